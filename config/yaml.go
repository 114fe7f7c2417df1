package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/cbrit/withdraw-commission/log"
)

// WriteYamlWithComments writes the struct as YAML, placing each field's `comment` tag above its key.
func WriteYamlWithComments(config interface{}, header string, filename string, logger *log.Logger) (bool, error) {
	fileData, err := addCommentsToYaml(config, header)
	if err != nil {
		return false, err
	}

	return SafeWrite(filename, fileData, logger)
}

func addCommentsToYaml(config interface{}, header string) ([]byte, error) {
	// Handle both struct and pointer to struct
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct, got %s", v.Kind())
	}

	var result strings.Builder

	// Add the custom header at the beginning
	if header != "" {
		result.WriteString("# " + header + "\n")
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)

		// Extract YAML tag and comment from struct field
		yamlTag := strings.Split(field.Tag.Get("yaml"), ",")[0]
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		comment := field.Tag.Get("comment")

		// Durations are written in their human readable form rather than as nanoseconds.
		value := v.Field(i).Interface()
		if duration, ok := value.(time.Duration); ok {
			value = duration.String()
		}

		data, err := yaml.Marshal(yaml.MapSlice{{Key: yamlTag, Value: value}})
		if err != nil {
			return nil, err
		}

		// Write the comment with a preceding blank line
		if comment != "" {
			result.WriteString("\n# " + comment + "\n")
		}
		result.Write(data)
	}

	return []byte(result.String()), nil
}
