package patcher

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlavorizrFile is the flavor descriptor path relative to the project root.
const FlavorizrFile = "flavorizr.yaml"

// Environment names, in the order files are written.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
	EnvUAT  = "uat"
)

// Environments returns the environment names in write order.
func Environments() []string {
	return []string{EnvDev, EnvProd, EnvUAT}
}

// Flavor is one build variant of the generated project.
type Flavor struct {
	Name          string
	DisplayName   string
	ApplicationID string
}

// Flavors derives the three flavors for a project. Production keeps the plain display
// name and bundle id; dev and uat get an upper-case suffix and an id suffix.
func Flavors(name, org string) []Flavor {
	display := ToDisplayName(name)
	bundle := BundleID(name, org)

	flavors := make([]Flavor, 0, len(Environments()))

	for _, env := range Environments() {
		if env == EnvProd {
			flavors = append(flavors, Flavor{Name: env, DisplayName: display, ApplicationID: bundle})

			continue
		}

		flavors = append(flavors, Flavor{
			Name:          env,
			DisplayName:   display + " " + strings.ToUpper(env),
			ApplicationID: bundle + "." + env,
		})
	}

	return flavors
}

type flavorApp struct {
	Name string `yaml:"name"`
}

type flavorAndroid struct {
	ApplicationID string `yaml:"applicationId"`
}

type flavorIOS struct {
	BundleID string `yaml:"bundleId"`
}

type flavorEntry struct {
	App     flavorApp     `yaml:"app"`
	Android flavorAndroid `yaml:"android"`
	IOS     flavorIOS     `yaml:"ios"`
}

// FlavorizrYAML renders flavorizr.yaml for the project. Top-level keys are the flavor
// names in sorted order.
func FlavorizrYAML(name, org string) ([]byte, error) {
	document := make(map[string]flavorEntry, len(Environments()))

	for _, flavor := range Flavors(name, org) {
		document[flavor.Name] = flavorEntry{
			App:     flavorApp{Name: flavor.DisplayName},
			Android: flavorAndroid{ApplicationID: flavor.ApplicationID},
			IOS:     flavorIOS{BundleID: flavor.ApplicationID},
		}
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	err := encoder.Encode(document)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", FlavorizrFile, err)
	}

	err = encoder.Close()
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", FlavorizrFile, err)
	}

	return buf.Bytes(), nil
}
