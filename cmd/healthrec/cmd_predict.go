// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tomtom215/healthrec/internal/app"
	"github.com/tomtom215/healthrec/internal/diagnosis"
	"github.com/tomtom215/healthrec/internal/validation"
)

// errPredictorDisabled is returned when no medical records file is set.
var errPredictorDisabled = errors.New("diagnosis predictor disabled: set diagnosis.records_csv")

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a diagnosis from vitals",
		Long: `Predict the most likely diagnosis for a set of vitals with a
nearest-centroid model over the configured medical records. --train first
evaluates the model on a stratified holdout and prints its accuracy.`,
		Example: `  healthrec predict --age 45 --blood-pressure 128 --glucose 110 --heart-rate 76
  healthrec predict --age 62 --blood-pressure 171 --glucose 100 --heart-rate 85 --train`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var v diagnosis.Vitals
			v.Age, _ = cmd.Flags().GetFloat64("age")
			v.BloodPressure, _ = cmd.Flags().GetFloat64("blood-pressure")
			v.Glucose, _ = cmd.Flags().GetFloat64("glucose")
			v.HeartRate, _ = cmd.Flags().GetFloat64("heart-rate")
			train, _ := cmd.Flags().GetBool("train")
			if errs := validation.ValidateStruct(&v); errs != nil {
				return errs
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if a.Predictor == nil {
					return errPredictorDisabled
				}
				var trained *diagnosis.TrainResult
				if train {
					res, err := a.Predictor.Train(ctx)
					if err != nil {
						return err
					}
					trained = &res
				}
				pred, err := a.Predictor.Predict(ctx, v)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					payload := map[string]any{"vitals": v, "diagnosis": pred.Diagnosis, "distances": pred.Distances}
					if trained != nil {
						payload["training"] = trained
					}
					return writeJSON(out, payload)
				}
				if trained != nil {
					heading(out, "Model")
					fmt.Fprintf(out, "  trained on %d, evaluated on %d, accuracy %s\n",
						trained.TrainSize, trained.TestSize, scoreColor.Sprintf("%.3f", trained.Accuracy))
				}
				heading(out, "Predicted diagnosis: %s", pred.Diagnosis)
				printDistances(out, pred.Distances)
				return nil
			})
		},
	}
	cmd.Flags().Float64("age", 45, "Age in years")
	cmd.Flags().Float64("blood-pressure", 120, "Systolic blood pressure")
	cmd.Flags().Float64("glucose", 100, "Glucose level")
	cmd.Flags().Float64("heart-rate", 75, "Heart rate")
	cmd.Flags().Bool("train", false, "Train with a holdout evaluation before predicting")
	return cmd
}

func printDistances(w io.Writer, distances map[string]float64) {
	labels := make([]string, 0, len(distances))
	for label := range distances {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return distances[labels[i]] < distances[labels[j]]
	})
	for _, label := range labels {
		fmt.Fprintf(w, "  %-20s %s\n", label, dimColor.Sprintf("%.3f", distances[label]))
	}
}
