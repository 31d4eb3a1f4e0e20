package billing

import (
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain/cart"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
)

func toInvoiceResponse(inv *entity.Invoice, companyName string, lines []*entity.InvoiceLineItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		CompanyID:      inv.CompanyID,
		CompanyName:    companyName,
		Number:         inv.Number,
		TotalAmount:    inv.TotalAmount,
		TaxAmount:      inv.TaxAmount,
		AmountReceived: inv.AmountReceived,
		BalanceDue:     inv.BalanceDue(),
		Status:         inv.Status,
		DueDate:        inv.DueDate,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
	for _, li := range lines {
		resp.Items = append(resp.Items, dto.InvoiceLineResponse{
			ID:          li.ID,
			ItemID:      li.InventoryItemID,
			Position:    li.Position,
			Name:        li.ItemName,
			HSN:         li.ItemHSN,
			Unit:        li.ItemUnit,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Discount:    li.Discount,
			TaxRate:     li.TaxRate,
			LineTotal:   li.LineTotal,
			Boxes:       li.Boxes,
			ItemsPerBox: li.ItemsPerBox,
		})
	}
	return resp
}

func toCartResponse(priced []cart.PricedLine, totals money.Totals) *dto.CartResponse {
	resp := &dto.CartResponse{
		Entries:    make([]dto.CartEntryResponse, 0, len(priced)),
		Subtotal:   totals.Subtotal,
		RoundOff:   totals.RoundOff,
		Tax:        totals.Tax,
		GrandTotal: totals.GrandTotal,
	}
	for _, p := range priced {
		resp.Entries = append(resp.Entries, dto.CartEntryResponse{
			Key:         p.Key,
			ItemID:      p.ItemID,
			Name:        p.Snapshot.Name,
			HSN:         p.Snapshot.HSN,
			Unit:        p.Snapshot.Unit,
			Rate:        p.Snapshot.Rate,
			GSTRate:     p.Snapshot.GSTRate,
			Quantity:    p.Quantity,
			Discount:    p.Discount,
			Boxes:       p.Boxes,
			ItemsPerBox: p.ItemsPerBox,
			LineTotal:   p.LineTotal,
		})
	}
	return resp
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		GSTNo:           c.GSTNo,
		PAN:             c.PAN,
		Address:         c.Address,
		State:           c.State,
		StateCode:       c.StateCode,
		Phone:           c.Phone,
		Email:           c.Email,
		PendingAmount:   c.PendingAmount,
		LastTransaction: c.LastTransaction,
		IsDeleted:       c.IsDeleted,
		DeletedAt:       c.DeletedAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toPaymentResponse(p *entity.CompanyPayment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Amount:          p.Amount,
		PreviousBalance: p.PreviousBalance,
		NewBalance:      p.NewBalance,
		Note:            p.Note,
		CreatedAt:       p.CreatedAt,
	}
}
