package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Attribution holds the organisational constants stamped into every output
// file. Defaults describe the WOEST campaign; a TOML file can override any
// field, e.g.
//
//	creator_name = "Dr A. N. Other"
//	project = "Another campaign"
type Attribution struct {
	Conventions string `toml:"conventions"`

	InstrumentManufacturer string `toml:"instrument_manufacturer"`

	CreatorName  string `toml:"creator_name"`
	CreatorEmail string `toml:"creator_email"`
	CreatorURL   string `toml:"creator_url"`
	Institution  string `toml:"institution"`

	ProcessingSoftwareURL     string `toml:"processing_software_url"`
	ProcessingSoftwareVersion string `toml:"processing_software_version"`

	Project                           string `toml:"project"`
	ProjectPrincipalInvestigator      string `toml:"project_principal_investigator"`
	ProjectPrincipalInvestigatorEmail string `toml:"project_principal_investigator_email"`
	ProjectPrincipalInvestigatorURL   string `toml:"project_principal_investigator_url"`

	Licence         string `toml:"licence"`
	Acknowledgement string `toml:"acknowledgement"`

	AMFVocabulariesRelease string `toml:"amf_vocabularies_release"`
}

// DefaultAttribution returns the WOEST radiosonde attribution.
func DefaultAttribution() Attribution {
	return Attribution{
		Conventions:                       "CF-1.6, NCAS-AMF-2.0.0",
		InstrumentManufacturer:            "Vaisala",
		CreatorName:                       "Dr Hugo Ricketts",
		CreatorEmail:                      "hugo.ricketts@ncas.ac.uk",
		CreatorURL:                        "https://orcid.org/0000-0002-1708-2431",
		Institution:                       "National Centre for Atmospheric Science (NCAS)",
		ProcessingSoftwareURL:             "https://github.com/gapintheclouds/woest-sondes",
		ProcessingSoftwareVersion:         "v0.1",
		Project:                           "WesCon – Observing the Evolving Structures of Turbulence (WOEST)",
		ProjectPrincipalInvestigator:      "Dr Ryan Neely III",
		ProjectPrincipalInvestigatorEmail: "ryan.neely@ncas.ac.uk",
		ProjectPrincipalInvestigatorURL:   "https://orcid.org/0000-0003-4560-4812",
		Licence: "Data usage licence - UK Government Open Licence agreement: " +
			"http://www.nationalarchives.gov.uk/doc/open-government-licence",
		Acknowledgement: "Acknowledgement of NCAS as the data provider is required " +
			"whenever and wherever these data are used",
		AMFVocabulariesRelease: "https://github.com/ncasuk/AMF_CVs/releases/tag/v2.0.0",
	}
}

// LoadAttribution returns the defaults overlaid with the TOML file at path.
// An empty path returns the defaults unchanged.
func LoadAttribution(path string) (Attribution, error) {
	attr := DefaultAttribution()
	if path == "" {
		return attr, nil
	}
	if _, err := toml.DecodeFile(path, &attr); err != nil {
		return Attribution{}, fmt.Errorf("load attribution %s: %w", path, err)
	}
	return attr, nil
}
