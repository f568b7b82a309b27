package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File represents the structure of the optional meshcheck.yaml file.
type File struct {
	STL     STLConfig     `yaml:"stl"`
	Inspect InspectConfig `yaml:"inspect"`
	Mail    MailConfig    `yaml:"mail"`
}

type STLConfig struct {
	ExtraKeywords []string `yaml:"extra_keywords"`
}

type InspectConfig struct {
	Extensions []string `yaml:"extensions"`
}

type MailConfig struct {
	To      []string `yaml:"to"`
	Subject string   `yaml:"subject,omitempty"`
}

const DefaultMailSubject = "meshcheck inspection results"

// LoadFile reads the YAML file at path.
// Returns nil without error if the file doesn't exist.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Mail.Subject == "" {
		f.Mail.Subject = DefaultMailSubject
	}
	return &f, nil
}
