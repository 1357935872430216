package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "NERFGEN_"

// DefaultEnvFile is read when no .env path is given
const DefaultEnvFile = ".env"

// LoadEnv loads KEY=VALUE pairs from a .env file into the process environment.
// Variables already set are not overwritten. A missing default file is ignored.
func LoadEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

type envBinding struct {
	name  string
	apply func(c *Config, value string) error
}

func stringVar(set func(c *Config, v string)) func(*Config, string) error {
	return func(c *Config, value string) error {
		set(c, value)
		return nil
	}
}

func intVar(set func(c *Config, v int)) func(*Config, string) error {
	return func(c *Config, value string) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		set(c, v)
		return nil
	}
}

func int64Var(set func(c *Config, v int64)) func(*Config, string) error {
	return func(c *Config, value string) error {
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		set(c, v)
		return nil
	}
}

func floatVar(set func(c *Config, v float64)) func(*Config, string) error {
	return func(c *Config, value string) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		set(c, v)
		return nil
	}
}

func boolVar(set func(c *Config, v bool)) func(*Config, string) error {
	return func(c *Config, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		set(c, v)
		return nil
	}
}

var envBindings = []envBinding{
	{"OUTPUT_DIR", stringVar(func(c *Config, v string) { c.Output.Dir = v })},
	{"KEEP_ALPHA", boolVar(func(c *Config, v bool) { c.Output.KeepAlpha = v })},
	{"MANIFEST_EVERY_FRAME", boolVar(func(c *Config, v bool) { c.Output.ManifestEveryFrame = v })},
	{"MIN_RADIUS", floatVar(func(c *Config, v float64) { c.Camera.MinRadius = v })},
	{"MAX_RADIUS", floatVar(func(c *Config, v float64) { c.Camera.MaxRadius = v })},
	{"WIDTH", intVar(func(c *Config, v int) { c.Render.Width = v })},
	{"HEIGHT", intVar(func(c *Config, v int) { c.Render.Height = v })},
	{"SAMPLES", intVar(func(c *Config, v int) { c.Render.SamplesPerPixel = v })},
	{"WORKERS", intVar(func(c *Config, v int) { c.Render.Workers = v })},
	{"SEED", int64Var(func(c *Config, v int64) { c.Render.Seed = v })},
	{"SCENE", stringVar(func(c *Config, v string) { c.Scene.Name = v })},
	{"ENVIRONMENT_MAP", stringVar(func(c *Config, v string) { c.Scene.EnvironmentMap = v })},
	{"AMQP_URL", stringVar(func(c *Config, v string) { c.Notify.AMQPURL = v })},
	{"AMQP_QUEUE", stringVar(func(c *Config, v string) { c.Notify.Queue = v })},
	{"LOG_DEBUG", boolVar(func(c *Config, v bool) { c.Log.Debug = v })},
}

// ApplyEnv overrides fields from NERFGEN_* variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, binding := range envBindings {
		name := EnvPrefix + binding.name
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := binding.apply(c, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
