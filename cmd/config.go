/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/valpere/hinditran/internal/llm"
)

const envPrefix = "HINDITRAN"

// initConfig layers configuration sources. Flags bound to viper win over
// HINDITRAN_* variables, which win over the config file. A .env file in the
// working directory only fills variables the environment does not set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hinditran")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config file: %v\n", err)
	}
}

func setDefaults() {
	viper.SetDefault("backend", "ollama")
	viper.SetDefault("input", "input.json")
	viper.SetDefault("output", "output.csv")
	viper.SetDefault("device", string(llm.DeviceAuto))
	viper.SetDefault("max_tokens", llm.DefaultMaxTokens)
}

// generatorOptions collects the model backend settings from every
// configuration source.
func generatorOptions() (llm.Options, error) {
	device, err := llm.ParseDevice(viper.GetString("device"))
	if err != nil {
		return llm.Options{}, err
	}
	return llm.Options{
		Model:     viper.GetString("model"),
		BaseURL:   viper.GetString("base_url"),
		APIKey:    viper.GetString("api_key"),
		Device:    device,
		MaxTokens: viper.GetInt("max_tokens"),
		Timeout:   viper.GetDuration("timeout"),
	}, nil
}
