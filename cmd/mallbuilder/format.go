package main

import (
	"fmt"
	"strings"

	"github.com/smartmall/builder/pkg/model"
	"github.com/smartmall/builder/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s\n", e.Path)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if len(e.EntityIDs) > 0 {
				fmt.Printf("    entities: %s\n", strings.Join(e.EntityIDs, ", "))
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s\n", w.Path)
			}
			if len(w.EntityIDs) > 0 {
				fmt.Printf("    entities: %s\n", strings.Join(w.EntityIDs, ", "))
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printProjectSummary(p *model.MallProject) {
	fmt.Printf("%s (rev %d)\n", p.Name, p.Revision)
	fmt.Printf("Outline: %.0f %s2, grid %g %s\n",
		p.Outline.Area(), p.Unit, p.GridSize, p.Unit)
	fmt.Println()

	fmt.Printf("%-8s %-16s %12s %8s %10s\n",
		"Level", "Floor", "Area", "Areas", "Leasable")
	for i := range p.Floors {
		f := &p.Floors[i]
		footprint := f.EffectiveShape(p.Outline)

		leasable := 0.0
		for j := range f.Areas {
			if f.Areas[j].Type.IsShop() {
				leasable += f.Areas[j].Shape.Area()
			}
		}
		fmt.Printf("%-8d %-16s %12.0f %8d %10.0f\n",
			f.Level, f.Name, footprint.Area(), len(f.Areas), leasable)
	}

	byType := map[model.AreaType]int{}
	for i := range p.Floors {
		for j := range p.Floors[i].Areas {
			byType[p.Floors[i].Areas[j].Type]++
		}
	}
	if len(byType) > 0 {
		fmt.Println()
		fmt.Println("Areas by type:")
		for _, t := range model.AreaTypes {
			if n := byType[t]; n > 0 {
				fmt.Printf("  %-12s %d\n", t, n)
			}
		}
	}

	if len(p.Connections) > 0 {
		fmt.Println()
		fmt.Printf("Vertical connections: %d\n", len(p.Connections))
		for i := range p.Connections {
			c := &p.Connections[i]
			fmt.Printf("  %-10s %s spans %d floor(s)\n", c.Type, c.AreaID, len(c.FloorIDs))
		}
	}
}
