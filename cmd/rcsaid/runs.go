package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rcsaid/internal/analysis"
	"github.com/san-kum/rcsaid/internal/config"
	"github.com/san-kum/rcsaid/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tMODE\tSTEPS\tDV\tSANE\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\t%v\t%s\n",
			r.ID, r.Scenario, r.Mode, r.Steps, r.Final.DeltaV, r.Final.Sane, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	tel, err := store.LoadTelemetry(args[0])
	if err != nil {
		return err
	}
	if tel.Len() == 0 {
		return fmt.Errorf("run %s has no telemetry", args[0])
	}

	for _, name := range columns {
		data, ok := tel.Column(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: no column %q\n", name)
			continue
		}
		caption := fmt.Sprintf("%s (%s)", name, args[0])
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(caption)))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	tel, err := store.LoadTelemetry(args[0])
	if err != nil {
		return err
	}

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	defer closeOut()

	w := csv.NewWriter(out)
	if err := w.Write(tel.Header); err != nil {
		return err
	}
	for _, row := range tel.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	tel, err := store.LoadTelemetry(args[0])
	if err != nil {
		return err
	}

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	defer closeOut()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Metadata *storage.RunMetadata `json:"metadata"`
		Columns  []string             `json:"columns"`
		Rows     [][]float64          `json:"rows"`
	}{meta, tel.Header, tel.Rows})
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	tel, err := store.LoadTelemetry(args[0])
	if err != nil {
		return err
	}
	data, ok := tel.Column(column)
	if !ok {
		return fmt.Errorf("run %s has no column %q", args[0], column)
	}

	s := analysis.Summarize(data)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", meta.ID)
	fmt.Fprintf(w, "column\t%s\n", column)
	fmt.Fprintf(w, "samples\t%d\n", s.N)
	fmt.Fprintf(w, "min\t%.6f\n", s.Min)
	fmt.Fprintf(w, "max\t%.6f\n", s.Max)
	fmt.Fprintf(w, "mean\t%.6f\n", s.Mean)
	fmt.Fprintf(w, "stddev\t%.6f\n", s.StdDev)
	if meta.Dt > 0 {
		fmt.Fprintf(w, "dominant freq\t%.4f Hz\n", analysis.DominantFrequency(data, meta.Dt))
	}
	return w.Flush()
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCONTROLLER\tTHRUSTERS\tRESOURCES\tDURATION")
		for _, name := range config.ListPresets() {
			p := config.GetPreset(name)
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0fs\n", name, p.Controller, len(p.Thrusters), len(p.Resources), p.Duration)
		}
		return w.Flush()
	}

	p := config.GetPreset(args[0])
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	if outFile != "" {
		if err := config.Save(outFile, p); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	return config.Write(os.Stdout, p)
}
