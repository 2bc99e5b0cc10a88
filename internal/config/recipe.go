package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Recipe is the ordered list of stage names to vertically compose into
// a runnable pipeline, plus the admin listen address — the CLI-local
// config shape the teacher's cmd/miragectl and cmd/ghostctl each load
// with BurntSushi/toml's DecodeFile/IsDefined pattern rather than the
// struct-tag-driven pelletier loader used for the stage tunables
// themselves.
type Recipe struct {
	Stages          []string
	AdminListenAddr string
}

type recipeFile struct {
	Stages          []string `toml:"stages"`
	AdminListenAddr string   `toml:"admin_listen_addr"`
}

// LoadRecipe decodes a recipe TOML document, defaulting AdminListenAddr
// the way loadServiceConfig defaults ServiceConfig fields via
// meta.IsDefined checks.
func LoadRecipe(path string) (Recipe, error) {
	var raw recipeFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Recipe{}, fmt.Errorf("load recipe: %w", err)
	}

	recipe := Recipe{AdminListenAddr: ":9400"}
	if meta.IsDefined("admin_listen_addr") {
		recipe.AdminListenAddr = strings.TrimSpace(raw.AdminListenAddr)
	}
	if meta.IsDefined("stages") {
		recipe.Stages = raw.Stages
	}
	if len(recipe.Stages) == 0 {
		return Recipe{}, fmt.Errorf("load recipe: stages must list at least one stage name")
	}
	return recipe, nil
}
