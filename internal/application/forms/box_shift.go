package forms

import (
	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/domain/boxshift"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
)

// NewCloseBoxShiftForm formulario de cierre con closed_amount precargado con el saldo esperado.
func NewCloseBoxShiftForm(shift *entity.BoxShift) *Form[dto.CloseBoxShiftRequest] {
	return New(dto.CloseBoxShiftRequest{
		BoxShiftID:   shift.ID,
		ClosedAmount: shift.ExpectedBalance,
	}, nil).WithFailureMessage("No se pudo cerrar el turno")
}

// CloseDiscrepancy desvío informativo entre el saldo esperado y el monto declarado.
func CloseDiscrepancy(shift *entity.BoxShift, req dto.CloseBoxShiftRequest) boxshift.Discrepancy {
	return boxshift.ClassifyDifference(shift.ExpectedBalance, req.ClosedAmount)
}
