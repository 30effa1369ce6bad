package engine

import (
	"errors"
	"fmt"
	"testing"

	"FundLens/internal/domain/models"
)

func TestValidateRequestAppliesDefaults(t *testing.T) {
	req := models.SimulationRequest{InitialValue: 1000, AnnualReturnPct: 10, AnnualVolPct: 15}
	if err := ValidateRequest(&req); err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if req.HorizonDays != 252 {
		t.Fatalf("horizon days = %d, want default 252", req.HorizonDays)
	}
	if req.Paths != 10000 {
		t.Fatalf("paths = %d, want default 10000", req.Paths)
	}
}

func TestValidateRequestReportsFieldAndCode(t *testing.T) {
	req := models.SimulationRequest{InitialValue: -5, AnnualReturnPct: 10, AnnualVolPct: 15}
	err := ValidateRequest(&req)
	if !IsCode(err, CodeInvalidParameter) {
		t.Fatalf("ValidateRequest() error = %v, want %s", err, CodeInvalidParameter)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error is not an engine error: %T", err)
	}
	if e.Field != "InitialValue" {
		t.Fatalf("field = %q, want InitialValue", e.Field)
	}
}

func TestValidateRequestRangeBounds(t *testing.T) {
	req := models.SimulationRequest{InitialValue: 100, AnnualReturnPct: 150, AnnualVolPct: 15}
	if err := ValidateRequest(&req); !IsCode(err, CodeInvalidParameter) {
		t.Fatalf("ValidateRequest() error = %v, want %s", err, CodeInvalidParameter)
	}
}

func TestErrorCodesAndWrapping(t *testing.T) {
	base := fmt.Errorf("matrix is singular to working precision")
	err := SingularCovariance("posterior precision matrix is not invertible").WithError(base)

	if !IsCode(err, CodeSingularCovariance) {
		t.Fatalf("IsCode() = false, want true")
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error lost")
	}
	wrapped := fmt.Errorf("recommend: %w", err)
	if !IsCode(wrapped, CodeSingularCovariance) {
		t.Fatalf("IsCode() through wrapping = false, want true")
	}
}

func TestInsufficientInstrumentsCarriesCount(t *testing.T) {
	err := InsufficientInstruments(1)
	if err.Params["count"] != 1 {
		t.Fatalf("params = %v, want count 1", err.Params)
	}
	if !IsCode(err, CodeInsufficientInstruments) {
		t.Fatalf("IsCode() = false, want true")
	}
}
