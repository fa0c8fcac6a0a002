package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/delivery/pkg/core"
)

// fileDish mirrors DishSeed with a decimal price as written by humans.
type fileDish struct {
	Restaurant string   `yaml:"restaurant"`
	Name       string   `yaml:"name"`
	Price      *float64 `yaml:"price"`
}

type fileCatalog struct {
	Restaurants []string   `yaml:"restaurants"`
	Dishes      []fileDish `yaml:"dishes"`
}

// LoadFile reads a seed catalog from a YAML file:
//
//	restaurants: [Pizzaria, Casa de Sushi]
//	dishes:
//	  - restaurant: Pizzaria
//	    name: Pizza de queijo
//	    price: 25.00
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML seed catalog. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fc fileCatalog
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid seed yaml: %w", err)
	}

	c := &Catalog{}
	for _, name := range fc.Restaurants {
		c.Restaurants = append(c.Restaurants, cleanName(name))
	}
	for i, d := range fc.Dishes {
		d.Name = cleanName(d.Name)
		d.Restaurant = cleanName(d.Restaurant)
		if d.Name == "" {
			return nil, fmt.Errorf("dish %d: name is required", i+1)
		}
		if d.Price == nil {
			return nil, fmt.Errorf("dish %q: price is required", d.Name)
		}
		price, err := core.PriceFromFloat(*d.Price)
		if err != nil {
			return nil, fmt.Errorf("dish %q: %w", d.Name, err)
		}
		c.Dishes = append(c.Dishes, DishSeed{Restaurant: d.Restaurant, Name: d.Name, Price: price})
	}
	for i, name := range c.Restaurants {
		if name == "" {
			return nil, fmt.Errorf("restaurant %d: name is required", i+1)
		}
	}

	return c, nil
}

// cleanName trims a name and puts it in NFC form, so "Salmão" typed with a
// combining tilde matches the precomposed spelling already in the store.
func cleanName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
