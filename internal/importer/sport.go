package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/tormoder/fit"
)

// mapSport reduces the FIT sport/sub-sport pair to the activity kinds the
// metrics engine understands.
func mapSport(sport fit.Sport, subSport fit.SubSport) string {
	// Indoor variants keep their parent kind.
	switch subSport {
	case fit.SubSportTreadmill, fit.SubSportTrail:
		return "run"
	case fit.SubSportIndoorCycling, fit.SubSportVirtualActivity:
		return "cycle"
	case fit.SubSportIndoorRowing:
		return "row"
	case fit.SubSportLapSwimming, fit.SubSportOpenWater:
		return "swim"
	case fit.SubSportElliptical, fit.SubSportStairClimbing:
		return "cardio"
	case fit.SubSportStrengthTraining:
		return "strength"
	case fit.SubSportYoga:
		return "yoga"
	}

	switch sport {
	case fit.SportRunning:
		return "run"
	case fit.SportCycling, fit.SportEBiking:
		return "cycle"
	case fit.SportSwimming:
		return "swim"
	case fit.SportRowing:
		return "row"
	case fit.SportWalking:
		return "walk"
	case fit.SportHiking:
		return "hike"
	case fit.SportTraining, fit.SportFitnessEquipment, fit.SportFloorClimbing:
		return "cardio"
	case fit.SportCrossCountrySkiing:
		return "xcski"
	case fit.SportAlpineSkiing:
		return "ski"
	case fit.SportSnowboarding:
		return "snowboard"
	case fit.SportInlineSkating, fit.SportIceSkating:
		return "skate"
	case fit.SportTennis:
		return "tennis"
	case fit.SportGolf:
		return "golf"
	case fit.SportStandUpPaddleboarding:
		return "sup"
	case fit.SportSurfing:
		return "surf"
	case fit.SportKitesurfing:
		return "kitesurf"
	case fit.SportWindsurfing:
		return "windsurf"
	case fit.SportWakeboarding:
		return "wakeboard"
	case fit.SportRockClimbing, fit.SportMountaineering:
		return "climb"
	case fit.SportPaddling, fit.SportKayaking:
		return "paddle"
	case fit.SportSailing:
		return "sail"
	}
	return "other"
}

// sourcePatterns map RunGap export filename markers to their origin.
var sourcePatterns = map[string]string{
	"_sa_": "strava",
	"_gc_": "garmin",
	"_zw_": "zwift",
	"_pf_": "pebble",
	"_fb_": "fitbit",
}

// detectSource identifies the uploading service from the filename, or nil
// when the filename carries no marker.
func detectSource(filename string) *string {
	for marker, source := range sourcePatterns {
		if strings.Contains(filename, marker) {
			s := source
			return &s
		}
	}
	return nil
}

var kindTitles = map[string]string{
	"run":       "Run",
	"cycle":     "Ride",
	"swim":      "Swim",
	"walk":      "Walk",
	"hike":      "Hike",
	"strength":  "Strength",
	"cardio":    "Cardio",
	"yoga":      "Yoga",
	"row":       "Row",
	"ski":       "Ski",
	"xcski":     "XC Ski",
	"snowboard": "Snowboard",
	"skate":     "Skate",
	"tennis":    "Tennis",
	"golf":      "Golf",
	"sup":       "SUP",
	"surf":      "Surf",
	"kitesurf":  "Kitesurf",
	"windsurf":  "Windsurf",
	"wakeboard": "Wakeboard",
	"climb":     "Climb",
	"paddle":    "Paddle",
	"sail":      "Sail",
}

// generateTitle produces a default activity title like "Morning Ride".
func generateTitle(kind string, startTime time.Time) string {
	timeOfDay := "Evening"
	switch {
	case startTime.Hour() < 12:
		timeOfDay = "Morning"
	case startTime.Hour() < 17:
		timeOfDay = "Afternoon"
	}

	name, ok := kindTitles[kind]
	if !ok {
		name = "Activity"
	}
	return fmt.Sprintf("%s %s", timeOfDay, name)
}
