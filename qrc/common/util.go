package common

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// LoadYaml loads a yaml file into out
func LoadYaml(filename string, out interface{}) error {
	yamlData, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if err = yaml.Unmarshal(yamlData, out); err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	return nil
}

// YamlObjectAsString outputs contents of yaml object with a label
func YamlObjectAsString(in interface{}, label string) string {
	d, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Sprintf("=== %s ===\nerror: %v\n\n", label, err)
	}
	return fmt.Sprintf("=== %s ===\n%s\n\n", label, string(d))
}

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// Capitalize upper-cases the first letter and lower-cases the rest
func Capitalize(text string) string {
	if len(text) == 0 {
		return text
	}
	_, size := utf8.DecodeRuneInString(text)
	return upperCaser.String(text[:size]) + lowerCaser.String(text[size:])
}

// Lower lower-cases text
func Lower(text string) string {
	return lowerCaser.String(text)
}

// StripProtocol removes a leading https:// or http://
func StripProtocol(url string) string {
	if strings.HasPrefix(url, "https://") {
		return url[len("https://"):]
	}
	return strings.TrimPrefix(url, "http://")
}

// DigitsOnly drops every non-digit character
func DigitsOnly(text string) string {
	var b strings.Builder
	for _, c := range text {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
