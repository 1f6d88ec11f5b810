package main

import (
	"fmt"
	"os"

	"github.com/smartmall/builder/pkg/codec"
	"github.com/smartmall/builder/pkg/model"
	"github.com/smartmall/builder/pkg/template"
	"github.com/smartmall/builder/pkg/validation"
)

// loadProject reads and decodes a project document from disk.
func loadProject(path string) (*model.MallProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return codec.Import(data)
}

func runNew(outputPath, templateID, name string) error {
	tpl, err := template.ByID(templateID)
	if err != nil {
		return err
	}
	m, err := tpl.Instantiate(name)
	if err != nil {
		return fmt.Errorf("instantiating template: %w", err)
	}

	doc, err := codec.Export(m.Project())
	if err != nil {
		return fmt.Errorf("exporting project: %w", err)
	}

	if outputPath == "-" {
		_, err = os.Stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(outputPath, doc, 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	fmt.Printf("Created %q from template %s -> %s\n", name, templateID, outputPath)
	return nil
}

func runValidate(path string) error {
	p, err := loadProject(path)
	if err != nil {
		return err
	}

	report := validation.ValidateProject(p)
	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runInspect(path string) error {
	p, err := loadProject(path)
	if err != nil {
		return err
	}
	printProjectSummary(p)
	return nil
}

func runTemplates() error {
	for _, tpl := range template.Catalog() {
		bounds := tpl.Outline.Bounds()
		fmt.Printf("%-12s %-18s %6.0f x %-6.0f floors: %d  %s\n",
			tpl.ID, tpl.Name, bounds.Width(), bounds.Height(), tpl.SuggestedFloors, tpl.Description)
	}
	return nil
}
