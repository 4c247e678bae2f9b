package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"crosswarped.com/pipegen"
	"crosswarped.com/pipegen/pkg/primitives"
)

// gridYAML is the on-disk shape of a solved grid.
type gridYAML struct {
	Size   int        `yaml:"size"`
	Seed   uint64     `yaml:"seed"`
	Rows   []string   `yaml:"rows"`
	Tiles  [][]string `yaml:"tiles"`
	Counts yaml.Node  `yaml:"counts"`
}

// writeGridYAML writes a solved grid to path, with a comment header naming
// the size and seed that produced it.
func writeGridYAML(g *pipegen.Grid, path string, seed uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# Pipe grid %dx%d\n", g.Size(), g.Size())
	fmt.Fprintf(f, "# Generated with seed: %d\n\n", seed)

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)

	doc := gridYAML{
		Size:   g.Size(),
		Seed:   seed,
		Rows:   strings.Split(g.Repr(), "\n"),
		Tiles:  tileRows(g),
		Counts: tileCounts(g),
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

func tileRows(g *pipegen.Grid) [][]string {
	rows := make([][]string, g.Size())
	for y := range g.Size() {
		rows[y] = make([]string, g.Size())
		for x := range g.Size() {
			cell, _ := g.Cell(x, y)
			if t, ok := cell.DefiniteTile(); ok {
				rows[y][x] = t.String()
			} else {
				rows[y][x] = "?"
			}
		}
	}
	return rows
}

// tileCounts returns per-tile counts as an explicit mapping node with the
// keys in tile order.
func tileCounts(g *pipegen.Grid) yaml.Node {
	counts := make(map[primitives.Tile]int)
	for y := range g.Size() {
		for x := range g.Size() {
			cell, _ := g.Cell(x, y)
			if t, ok := cell.DefiniteTile(); ok {
				counts[t]++
			}
		}
	}

	node := yaml.Node{Kind: yaml.MappingNode}
	for t := range primitives.AllTiles() {
		if counts[t] == 0 {
			continue
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: t.String()},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(counts[t])},
		)
	}
	return node
}
