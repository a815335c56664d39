package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the CLI for bash completion. Install it with
// COMP_INSTALL=1 thomas.
func Completion() *complete.Command {
	csvFiles := predict.Files("*.csv")
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"simulate": {
				Flags: map[string]complete.Predictor{
					"portfolio":         csvFiles,
					"cash":              predict.Nothing,
					"scoop-amount":      predict.Nothing,
					"min-skim-proceeds": predict.Nothing,
					"out-dir":           predict.Dirs("*"),
					"d":                 predict.Nothing,
					"db":                predict.Files("*.db"),
				},
			},
			"prices": {
				Flags: map[string]complete.Predictor{
					"portfolio": csvFiles,
					"n":         predict.Nothing,
				},
			},
			"history": {
				Flags: map[string]complete.Predictor{
					"db": predict.Files("*.db"),
					"n":  predict.Nothing,
				},
			},
			"build": {
				Flags: map[string]complete.Predictor{
					"amount":  predict.Nothing,
					"goal":    predict.Nothing,
					"account": predict.Set(accountTypes),
					"models":  predict.Files("*.yaml"),
				},
			},
			"income": {
				Flags: map[string]complete.Predictor{
					"portfolio": csvFiles,
					"goal":      predict.Nothing,
				},
			},
			"score": {
				Flags: map[string]complete.Predictor{
					"ratings": predict.Files("*.yaml"),
				},
			},
			"assist": {
				Flags: map[string]complete.Predictor{
					"portfolio": csvFiles,
					"cash":      predict.Nothing,
				},
			},
			"topic": {},
		},
	}
}
