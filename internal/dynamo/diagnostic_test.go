package dynamo

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

func seedDiag(t *testing.T, fake *fakeDynamo, rec domain.DiagRecord) {
	t.Helper()
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	fake.items[rec.PetID] = append(fake.items[rec.PetID], item)
}

func TestLatestDiagnostic_ReturnsNewest(t *testing.T) {
	fake := newFakeDynamo()
	seedDiag(t, fake, domain.DiagRecord{PetID: "p1", SK: "2025-06-01T09:00:00Z", GeneratedQuestions: `["old"]`})
	seedDiag(t, fake, domain.DiagRecord{PetID: "p1", SK: "2025-06-02T09:00:00Z", FinalReport: "종합 리포트 본문"})
	store := NewDiagStore(fake, "diag")

	rec, err := store.LatestDiagnostic(context.Background(), "p1")
	if err != nil {
		t.Fatalf("LatestDiagnostic: %v", err)
	}
	if rec == nil || rec.SK != "2025-06-02T09:00:00Z" {
		t.Fatalf("rec = %+v, want the newest artifact", rec)
	}
	if rec.FinalReport != "종합 리포트 본문" {
		t.Fatalf("final report: %q", rec.FinalReport)
	}
}

func TestLatestDiagnostic_EmptyTable(t *testing.T) {
	store := NewDiagStore(newFakeDynamo(), "diag")
	rec, err := store.LatestDiagnostic(context.Background(), "unknown")
	if err != nil || rec != nil {
		t.Fatalf("want (nil, nil), got (%+v, %v)", rec, err)
	}
}
