package rag

import (
	"reflect"
	"testing"
)

func TestExpandQuery(t *testing.T) {
	e := &Engine{}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "no trigger returns query alone",
			query: "What is dialysis?",
			want:  []string{"What is dialysis?"},
		},
		{
			name:  "symptoms trigger",
			query: "What are the Symptoms of CKD?",
			want: []string{
				"What are the Symptoms of CKD?",
				"what are the signs of ckd?",
				"what are the manifestations of ckd?",
				"what are the clinical features of ckd?",
			},
		},
		{
			name:  "treatment trigger",
			query: "treatment for nephropathy",
			want: []string{
				"treatment for nephropathy",
				"management for nephropathy",
				"therapy for nephropathy",
			},
		},
		{
			name:  "cause trigger",
			query: "What is the cause of proteinuria?",
			want: []string{
				"What is the cause of proteinuria?",
				"what is the etiology of proteinuria?",
				"what is the reason of proteinuria?",
				"what is the origin of proteinuria?",
			},
		},
		{
			name:  "only first trigger expands",
			query: "symptoms and treatment of ckd",
			want: []string{
				"symptoms and treatment of ckd",
				"signs and treatment of ckd",
				"manifestations and treatment of ckd",
				"clinical features and treatment of ckd",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExpandQuery(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpandQuery(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestIsUnknownAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"plain refusal", "I don't know.", true},
		{"uppercase refusal", "I DON'T KNOW the answer to that.", true},
		{"not found", "The answer was not found in the context.", true},
		{"couldn't find", "Sorry, I couldn't find that.", true},
		{"no relevant information", "There is no relevant information available.", true},
		{"real answer", "CKD is staged by glomerular filtration rate.", false},
		{"empty answer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnknownAnswer(tt.answer); got != tt.want {
				t.Errorf("IsUnknownAnswer(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}
