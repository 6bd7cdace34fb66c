// cmd/tools/dataset-validator/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/common/validation"
	"plan-recommender/internal/dataset"
	"plan-recommender/internal/engine/catalog"
	"plan-recommender/internal/export"
	"plan-recommender/internal/models"
)

func main() {
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	catalogCmd := flag.NewFlagSet("catalog", flag.ExitOnError)

	checkPath := checkCmd.String("path", "", "Path to the customer dataset CSV")
	catalogPath := catalogCmd.String("path", "", "Path to the customer dataset CSV")
	catalogOut := catalogCmd.String("out", "", "Optional file to write the derived catalog CSV to")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		checkCmd.Parse(os.Args[2:])
		if *checkPath == "" {
			fmt.Println("Error: -path is required for check.")
			checkCmd.Usage()
			os.Exit(1)
		}
		if err := checkDataset(*checkPath); err != nil {
			fmt.Printf("Dataset check failed: %v\n", err)
			os.Exit(1)
		}

	case "catalog":
		catalogCmd.Parse(os.Args[2:])
		if *catalogPath == "" {
			fmt.Println("Error: -path is required for catalog.")
			catalogCmd.Usage()
			os.Exit(1)
		}
		if err := printCatalog(*catalogPath, *catalogOut); err != nil {
			fmt.Printf("Catalog derivation failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		help()

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		help()
		os.Exit(1)
	}
}

func checkDataset(path string) error {
	customers, rowErrs, err := loadDataset(path)
	if err != nil {
		return err
	}

	for _, re := range rowErrs {
		fmt.Printf("PARSE  %v\n", re)
	}

	invalid := 0
	for _, c := range customers {
		if result := validation.ValidateCustomer(c); !result.Valid {
			invalid++
			fmt.Printf("INVALID %s: %s\n", c.CustomerID, result.Summary())
		}
	}

	fmt.Printf("\n%d rows parsed, %d unparseable, %d failed validation\n",
		len(customers), len(rowErrs), invalid)

	if len(rowErrs) > 0 || invalid > 0 {
		return fmt.Errorf("%d problem rows", len(rowErrs)+invalid)
	}
	fmt.Println("Dataset check passed.")
	return nil
}

func printCatalog(path, out string) error {
	customers, _, err := loadDataset(path)
	if err != nil {
		return err
	}

	plans := catalog.Build(customers)
	if out != "" {
		if err := export.SaveCatalogCSV(out, plans); err != nil {
			return err
		}
		fmt.Printf("Wrote %d plans to %s\n", len(plans), out)
		return nil
	}

	fmt.Printf("%-20s %12s %14s %10s %10s\n", "PLAN", "DATA_GB", "CALL_MIN", "SMS", "PRICE")
	for _, p := range plans {
		fmt.Printf("%-20s %12.2f %14.2f %10.2f %10.2f\n",
			p.PlanID, p.DataLimitGB, p.CallLimitMin, p.SMSLimit, p.PlanPrice)
	}
	return nil
}

func loadDataset(path string) ([]models.CustomerRecord, []dataset.RowError, error) {
	source := dataset.NewCSVSource(path, logger.NewNoOpLogger())
	return source.Load(context.Background())
}

func help() {
	fmt.Println(`Usage: dataset-validator <command> [flags]

Commands:
  check    -path <file>             Validate a customer dataset CSV
  catalog  -path <file> [-out <f>]  Derive and print the plan catalog
  help                              Show this help`)
}
