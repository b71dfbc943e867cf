package mapper

import (
	"time"

	coredto "castle-admin/core/dto"
	"castle-admin/core/utils"
	"castle-admin/modules/booking/dto"
	"castle-admin/modules/booking/entity"
)

const dateLayout = "2006-01-02"

// ToBookingResponse renders a row with its status derived against now.
func ToBookingResponse(b *entity.Booking, now time.Time) *dto.BookingResponse {
	if b == nil {
		return nil
	}
	resp := &dto.BookingResponse{
		ID:              b.ID,
		BookingRef:      b.BookingRef,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		CustomerAddress: b.CustomerAddress,
		CastleID:        b.CastleID,
		CastleName:      b.CastleName,
		Date:            b.Date.Format(dateLayout),
		Overnight:       b.Overnight,
		PaymentMethod:   b.PaymentMethod,
		TotalPrice:      b.TotalPrice,
		Deposit:         b.Deposit,
		Status:          string(entity.DeriveStatus(b.Status, b.LastDay(), now)),
		StoredStatus:    string(b.Status),
		Notes:           b.Notes,
		CalendarEventID: utils.DerefString(b.CalendarEventID),
		AgreementSigned: b.AgreementSigned,
		AgreementAt:     b.AgreementSignedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.EndDate != nil {
		resp.EndDate = b.EndDate.Format(dateLayout)
	}
	return resp
}

func ToPaginatedBookingResponse(page *entity.PaginatedBookingEntity, now time.Time) *dto.PaginatedBookingResponse {
	items := make([]dto.BookingResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToBookingResponse(&page.Items[i], now))
	}
	return &dto.PaginatedBookingResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: coredto.TotalPages(page.TotalItems, page.PageSize),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
