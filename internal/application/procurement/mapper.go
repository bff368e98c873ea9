package procurement

import (
	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/procurement"
)

func toLineItemDTOs(items []entity.LineItem) []dto.LineItemDTO {
	out := make([]dto.LineItemDTO, 0, len(items))
	for _, it := range items {
		forms := make([]string, 0, len(it.Forms))
		for _, f := range it.Forms.Sorted() {
			forms = append(forms, string(f))
		}
		out = append(out, dto.LineItemDTO{
			ID:                  it.ID,
			StockPropertyNumber: it.StockPropertyNumber,
			Unit:                it.Unit,
			Description:         it.Description,
			Quantity:            it.Quantity,
			UnitCost:            it.UnitCost,
			Amount:              it.Amount,
			Forms:               forms,
		})
	}
	return out
}

func toSupplierDTO(s entity.Supplier) dto.SupplierDTO {
	return dto.SupplierDTO{
		Name:          s.Name,
		Address:       s.Address,
		TIN:           s.TIN,
		ContactPerson: s.ContactPerson,
		ContactNumber: s.ContactNumber,
		Email:         s.Email,
	}
}

func toProcurementDTO(p entity.ProcurementDetails) dto.ProcurementDetailsDTO {
	return dto.ProcurementDetailsDTO{
		PONumber:          p.PONumber,
		Department:        p.Department,
		ModeOfProcurement: p.ModeOfProcurement,
		PlaceOfDelivery:   p.PlaceOfDelivery,
		DeliveryDate:      p.DeliveryDate,
		DeliveryTerm:      p.DeliveryTerm,
		PaymentTerm:       p.PaymentTerm,
		Purpose:           p.Purpose,
	}
}

func toFundingDTO(f entity.Funding) dto.FundingDTO {
	return dto.FundingDTO{
		FundCluster:    f.FundCluster,
		FundsAvailable: f.FundsAvailable,
		ORSBURSNumber:  f.ORSBURSNumber,
		ORSBURSDate:    f.ORSBURSDate,
		Remarks:        f.Remarks,
	}
}

func toDraftResponse(d *entity.RequestDraft) *dto.DraftResponse {
	return &dto.DraftResponse{
		Owner:       d.Owner,
		Step:        int(d.Step),
		StepName:    d.Step.String(),
		Supplier:    toSupplierDTO(d.Supplier),
		Procurement: toProcurementDTO(d.Procurement),
		Funding:     toFundingDTO(d.Funding),
		Items:       toLineItemDTOs(d.Items),
		TotalAmount: procurement.RecomputeTotal(d.Items),
		StartedAt:   d.StartedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toRequestResponse(r *entity.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:              r.ID,
		PONumber:        r.PONumber,
		Status:          string(r.Status),
		Bucket:          string(r.Bucket()),
		Department:      r.Department,
		Supplier:        toSupplierDTO(r.Supplier),
		Procurement:     toProcurementDTO(r.Procurement),
		Funding:         toFundingDTO(r.Funding),
		Items:           toLineItemDTOs(r.Items),
		TotalAmount:     r.TotalAmount,
		RequestedBy:     r.RequestedBy,
		RequestedDate:   r.RequestedDate,
		ApprovedBy:      r.ApprovedBy,
		ApprovedDate:    r.ApprovedDate,
		RejectedBy:      r.RejectedBy,
		RejectedDate:    r.RejectedDate,
		RejectionReason: r.RejectionReason,
		ArchivedBy:      r.ArchivedBy,
		ArchivedDate:    r.ArchivedDate,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toItemsResponse(items []entity.LineItem, removed *bool) *dto.ItemsResponse {
	return &dto.ItemsResponse{
		Items:       toLineItemDTOs(items),
		TotalAmount: procurement.RecomputeTotal(items),
		Removed:     removed,
	}
}
