package settings

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// ModuleArgs is the parameter set an orchestration tool passes to the fetch.
// Nil fields were not supplied and leave the config untouched.
type ModuleArgs struct {
	Port         *int    `mapstructure:"iap_port"`
	FQDN         *string `mapstructure:"iap_fqdn"`
	Token        *string `mapstructure:"token_key"`
	WorkflowName *string `mapstructure:"workflow_name"`
	HTTPS        *bool   `mapstructure:"https"`
}

// LoadModuleArgs reads a JSON or YAML args file from fs.
func LoadModuleArgs(fs afero.Fs, path string) (*ModuleArgs, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading args file %s", path)
	}

	args, err := ParseModuleArgs(content)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing args file %s", path)
	}
	return args, nil
}

// ParseModuleArgs decodes a JSON or YAML mapping of module arguments.
// Scalars are coerced the way orchestration tools send them: ports as strings, booleans as yes/no.
func ParseModuleArgs(content []byte) (*ModuleArgs, error) {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	args := &ModuleArgs{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       boolWordHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           args,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return args, nil
}

func boolWordHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(data.(string))) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return data, nil
}

// Apply overlays the supplied arguments onto cfg.
func (a *ModuleArgs) Apply(cfg *Config) {
	if a.FQDN != nil {
		cfg.Host = *a.FQDN
	}
	if a.Port != nil {
		cfg.Port = *a.Port
	}
	if a.Token != nil {
		cfg.Token = *a.Token
	}
	if a.HTTPS != nil {
		cfg.HTTPS = *a.HTTPS
	}
}
