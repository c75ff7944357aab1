package dto

// CoverDTO 封面上传结果
type CoverDTO struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
