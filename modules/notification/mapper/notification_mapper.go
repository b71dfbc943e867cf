package mapper

import (
	coredto "castle-admin/core/dto"
	"castle-admin/core/utils"
	"castle-admin/modules/notification/dto"
	"castle-admin/modules/notification/entity"
)

func ToNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		BookingID: n.BookingID,
		Channel:   n.Channel,
		Recipient: n.Recipient,
		Subject:   n.Subject,
		Status:    string(n.Status),
		Error:     utils.DerefString(n.Error),
		Attempts:  n.Attempts,
		Data:      n.Data,
		SentAt:    n.SentAt,
		CreatedAt: n.CreatedAt,
	}
}

func ToPaginatedNotificationResponse(page *entity.PaginatedNotificationEntity) *dto.PaginatedNotificationResponse {
	if page == nil {
		return &dto.PaginatedNotificationResponse{Items: []dto.NotificationResponse{}}
	}
	items := make([]dto.NotificationResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToNotificationResponse(&page.Items[i])
	}
	return &dto.PaginatedNotificationResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: coredto.TotalPages(page.TotalItems, page.PageSize),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
