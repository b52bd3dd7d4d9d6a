package handler

type QueryResponse struct {
	AnswerText string  `json:"answer_text"`
	Ticker     *string `json:"ticker"`
	Status     string  `json:"status"`
}

type SessionResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

type MessageResponse struct {
	ID        int64  `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type FavoriteRequest struct {
	Ticker string `json:"ticker" binding:"required"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
