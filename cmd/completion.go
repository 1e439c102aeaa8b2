package cmd

import (
	"flag"

	"github.com/etnz/homereturn"
	"github.com/etnz/homereturn/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the commands, and of their flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		switch c.Name() {
		case "rate":
			sub.Args = currencyPredictor()
		case "topic":
			sub.Args = topicPredictor()
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	predictors := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		predictors[fl.Name] = flagPredictor(fl)
	})
	return predictors
}

func flagPredictor(fl *flag.Flag) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "config":
		return predict.Files("*.toml")
	case "payments":
		return predict.Files("*.jsonl")
	case "currency":
		return currencyPredictor()
	case "format":
		return predict.Set{"markdown", "json", "csv"}
	case "log-level":
		return predict.Set{"debug", "info", "warn", "error"}
	default:
		return predict.Something
	}
}

func topicPredictor() complete.Predictor {
	topics, _ := docs.Topics()
	return predict.Set(topics)
}

func currencyPredictor() complete.Predictor {
	var codes predict.Set
	for _, c := range homereturn.Currencies() {
		codes = append(codes, c.String())
	}
	return codes
}
