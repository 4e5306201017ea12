package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/teams"
)

func main() {
	_ = godotenv.Load()

	rosterPath := flag.String("roster", os.Getenv("ROSTER_PATH"), "roster file (.json, .yaml); empty uses the built-in roster")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-roster file] name [name...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	roster := teams.DefaultRoster()
	if *rosterPath != "" {
		loaded, err := teams.LoadRoster(*rosterPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		roster = loaded
	}

	fmt.Printf("Roster: %d teams\n", len(roster))
	fmt.Println(strings.Repeat("-", 72))

	misses := 0
	for _, query := range flag.Args() {
		_, kind := teams.ResolveKind(query, roster)
		b := teams.BadgeFor(query, roster)
		if !b.Matched {
			misses++
			fmt.Printf("%-28s -> no match (showing raw name, colors %s/%s)\n", query, b.PrimaryColor, b.AltColor)
			continue
		}
		fmt.Printf("%-28s -> %s [%s] %s/%s (%s)\n", query, b.Name, b.Abbreviation, b.PrimaryColor, b.AltColor, kind)
		if b.Logo != "" {
			fmt.Printf("%-28s    logo %s\n", "", b.Logo)
		}
	}

	if misses > 0 {
		os.Exit(1)
	}
}
