// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/cpmech/ballastcore/hydro"
	"github.com/cpmech/ballastcore/planio"
	"github.com/cpmech/ballastcore/profile"
	"github.com/cpmech/ballastcore/stages"
	"github.com/cpmech/ballastcore/tanks"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/rs/zerolog"
)

func main() {

	// catch InputErrors and any other panic, report, and exit non-zero —
	// the only recover block in the whole repo (spec §4.6)
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	tanksPath := flag.String("tanks", "", "tank registry CSV")
	hydroPath := flag.String("hydro", "", "hydrostatic table CSV")
	stagesPath := flag.String("stages", "", "stage table CSV")
	profilePath := flag.String("profile", "", "site profile YAML (optional)")
	outDir := flag.String("out", ".", "output directory for the three run reports")
	flag.Parse()

	if *tanksPath == "" || *hydroPath == "" || *stagesPath == "" {
		chk.Panic("usage: ballastcore -tanks=registry.csv -hydro=table.csv -stages=stagetable.csv [-profile=site.yaml] [-out=dir]")
	}

	io.PfWhite("\nballastcore -- marine ballast planning core\n\n")

	var prof profile.Profile
	if *profilePath != "" {
		f := openOrPanic(*profilePath)
		defer f.Close()
		prof = profile.Load(f)
	}
	merged := profile.Merge(profile.Profile{}, prof)

	guardBandM := 0.02
	if merged.GateGuardBandCm != nil {
		guardBandM = *merged.GateGuardBandCm / 100
	}
	freeboardMinM := 0.0
	if merged.FreeboardMinM != nil {
		freeboardMinM = *merged.FreeboardMinM
	}

	tanksFile := openOrPanic(*tanksPath)
	defer tanksFile.Close()
	registryRows := tanks.LoadCSV(tanksFile)
	reg := tanks.NewRegistry(registryRows)
	if merged.TankOverrides != nil {
		reg.ResolveOverrides(profileOverrides(merged))
	}

	hydroFile := openOrPanic(*hydroPath)
	defer hydroFile.Close()
	table := hydro.LoadCSV(hydroFile)

	stagesFile := openOrPanic(*stagesPath)
	defer stagesFile.Close()
	inputs := stages.LoadCSV(stagesFile, freeboardMinM, guardBandM, merged.TrimAbsLimitM)

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	planner := stages.NewPlanner(table, reg, logger)
	if merged.CriticalStageRegex != nil {
		planner.Classifier = stages.NewClassifierFromRegex(*merged.CriticalStageRegex)
	} else if merged.CriticalStageList != nil {
		planner.Classifier = stages.NewClassifierFromNames(merged.CriticalStageList)
	}

	results := planner.Run(context.Background(), inputs)

	exitCode := 0
	for _, r := range results {
		if r.HardStopAny {
			exitCode = 1
		}
	}

	pumpRates := make(map[string]float64, len(registryRows))
	for _, t := range registryRows {
		pumpRates[t.ID] = t.PumpRateTph
	}

	writeOrPanic(filepath.Join(*outDir, "ballast_plan.csv"), func(f *os.File) error {
		return planio.WriteBallastPlan(f, results, pumpRates)
	})
	writeOrPanic(filepath.Join(*outDir, "stage_summary.csv"), func(f *os.File) error {
		return planio.WriteStageSummary(f, results)
	})
	writeOrPanic(filepath.Join(*outDir, "qa_table.csv"), func(f *os.File) error {
		return planio.WriteQATable(f, planio.BuildQARows(results))
	})

	io.PfGreen("\nballastcore: run complete, %d stage(s) processed\n", len(results))
	os.Exit(exitCode)
}

func openOrPanic(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		chk.Panic("ballastcore: cannot open %s: %v", path, err)
	}
	return f
}

func writeOrPanic(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		chk.Panic("ballastcore: cannot create %s: %v", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		chk.Panic("ballastcore: cannot write %s: %v", path, err)
	}
}

// profileOverrides translates the site profile's tank_overrides (spec
// §4.4) into tanks.Override records for Registry.ResolveOverrides.
func profileOverrides(prof profile.Profile) []tanks.Override {
	overrides := make([]tanks.Override, 0, len(prof.TankOverrides))
	for _, o := range prof.TankOverrides {
		ov := tanks.Override{}
		if o.TankID != nil {
			ov.Key = *o.TankID
		}
		if o.Mode != nil {
			m := tanks.ParseMode(*o.Mode)
			ov.Mode = &m
		}
		ov.UseFlag = o.UseFlag
		ov.MinT = o.MinT
		ov.MaxT = o.MaxT
		ov.PumpRateTph = o.PumpRateTph
		ov.PriorityWeight = o.PriorityWeight
		overrides = append(overrides, ov)
	}
	return overrides
}
