// Package domain defines the core persistence models for the application.
// This file declares the read model for the DynamoDB diagnostic table, which
// an offline pipeline fills with per-pet generated questionnaires and final
// reports. This service only reads it.
package domain

// DiagRecord is one diagnostic artifact for a pet. Either section may be
// empty depending on how far the pipeline has progressed.
type DiagRecord struct {
	PetID              string `json:"PK"                  dynamodbav:"PK"`
	SK                 string `json:"SK"                  dynamodbav:"SK"`
	GeneratedQuestions string `json:"generated_questions" dynamodbav:"generated_questions"`
	FinalReport        string `json:"final_report"        dynamodbav:"final_report"`
	CreatedAt          string `json:"createdAt"           dynamodbav:"createdAt"`
}
