// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package diagnosis predicts a diagnosis from four vital signs: age, systolic
blood pressure, glucose level and heart rate.

The model standardizes each feature over the training records and assigns
the label whose class centroid is nearest. Training holds out a stratified,
seeded share of each label and reports accuracy on it.

	src, _ := database.NewMedicalRecordsCSV(db, "data/medical_records.csv")
	p, _ := diagnosis.NewPredictor(src, diagnosis.DefaultConfig(), logger)
	res, _ := p.Train(ctx)
	pred, _ := p.Predict(ctx, diagnosis.Vitals{Age: 45, BloodPressure: 128, Glucose: 110, HeartRate: 76})

Records tables resolve their columns case-insensitively through aliases
(blood_pressure, bp or systolic; glucose_level or glucose; heart_rate, hr or
pulse; diagnosis, disease or label).
*/
package diagnosis
