// Package domain models radiosonde ascents recorded by Vaisala MW41 sounding
// systems and exported as "EDT" text files.
//
// # Data Source
//
// Each ascent is one text file named
//
//	<prefix>_<YYYYMMDD>_<HHMMSS>.txt   e.g. "edt1sdataforv217_20231010_112200.txt"
//
// The date and time parts of the name are copied into the metadata under the
// synthetic keys "date" and "time". The file body is ISO-8859-1, not UTF-8
// (degree signs in the units line are single bytes).
//
// # File Layout
//
//	System trademark and model<TAB>MW41
//	Station name<TAB>Reading
//	Balloon release date and time<TAB>2023-10-10T11:22:00
//	...                                   (blank and separator lines may appear)
//	Elapsed time<TAB>TimeUTC<TAB>P<TAB>Temp<TAB>RH<TAB>...   column names
//	s<TAB><TAB>hPa<TAB>°C<TAB>%<TAB>...                      units
//	0<TAB>11:22:00<TAB>1002.1<TAB>14.2<TAB>81<TAB>...       data rows
//
// The column-name row is announced by its own first token: "Elapsed time" for
// most stations, " TimeUTC" (leading space) for stations whose export has no
// elapsed time column. The line after it carries units and is skipped.
//
// # Missing Values
//
// The vendor writes runs of slashes ("//////") for missing samples. Any token
// that does not parse as a number becomes NaN and travels through the derived
// fields untouched; the NetCDF writer swaps NaN for the fill value only after
// valid_min/valid_max have been computed. Rows with an empty TimeUTC token are
// the truncated trailer of an aborted export and are dropped.
//
// # Heights
//
// Two heights are exported: HeightMSL (pressure-derived) and GpsHeightMSL.
// The published altitude variable uses GPS height; HeightMSL is parsed into
// the "Height" column but not written.
package domain
