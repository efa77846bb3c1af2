package domain

import "strings"

// readingHeader is an EDT header in the layout exported at Reading: no
// elapsed time column, so the column-name row opens with " TimeUTC".
var readingHeader = []string{
	"Sounding data",
	"",
	"System trademark and model\tMW41",
	"Station name\tReading",
	"Balloon release date and time\t2023-10-10T11:22:00",
	"Sonde type\tRS41-SGP",
	"Sonde software version\t2.4.0",
	"Sonde serial number\tU1234567",
	"Software version\tMW41 2.17.0",
	"Release point height from sea level\t66 m",
	"-----------------------------------",
	" TimeUTC\tP\tTemp\tRH\tSpeed\tDir\tHeightMSL\tGpsHeightMSL\tLat\tLon\tAscRate",
	"\thPa\t°C\t%\tm/s\t°\tm\tm\t°\t°\tm/s",
}

var readingRows = []string{
	"11:22:00\t1002.1\t14.2\t81\t3.1\t250\t66\t67.0\t51.1\t-1.5\t0.0",
	"11:22:10\t1000.9\t14.0\t80\t3.3\t252\t76\t77.2\t51.2\t-1.4\t5.1",
	"11:22:20\t999.7\t13.9\t80\t3.6\t255\t86\t87.9\t51.4\t-1.2\t5.3",
}

func readingLines() []string {
	return append(append([]string{}, readingHeader...), readingRows...)
}

// elapsedLines is the common layout whose column-name row opens with
// "Elapsed time".
func elapsedLines(rows ...string) []string {
	lines := []string{
		"System trademark and model\tMW41",
		"Station name\tAshFarm",
		"Balloon release date and time\t2023-07-01T09:00:00",
		"",
		"Elapsed time\tTimeUTC\tP\tTemp\tRH\tSpeed\tDir\tHeightMSL\tGpsHeightMSL\tLat\tLon\tAscRate",
		"s\t\thPa\t°C\t%\tm/s\t°\tm\tm\t°\t°\tm/s",
	}
	return append(lines, rows...)
}

func elapsedRow(elapsed, tod string, temp string) string {
	return strings.Join([]string{elapsed, tod, "1000.0", temp, "75", "4.0", "180", "100", "101", "51.0", "-1.0", "5.0"}, "\t")
}
