package dto

import "time"

// ActivityDTO 后台操作记录
type ActivityDTO struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	Title     string    `json:"title"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
}

type ActivityListDTO struct {
	Limit int `form:"limit"`
}
