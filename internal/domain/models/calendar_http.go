package models

// Requests for calendar HTTP endpoints. Defined in domain for consistency and reuse.

type EventsRequest struct {
	Currency string `query:"currency" json:"currency" validate:"omitempty,len=3"`
	Impact   string `query:"impact" json:"impact" validate:"omitempty,oneof=Low Medium High Holiday"`
	From     string `query:"from" json:"from"`
	To       string `query:"to" json:"to"`
	Limit    int    `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=10000"`
}

type AlignedRequest struct {
	Pair     string `query:"pair" json:"pair" validate:"required,len=6"`
	Currency string `query:"currency" json:"currency" validate:"omitempty,len=3"`
	From     string `query:"from" json:"from"`
	To       string `query:"to" json:"to"`
	Limit    int    `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=10000"`
}

type BarsRequest struct {
	Pair   string `query:"pair" json:"pair" validate:"required,len=6"`
	Period string `query:"period" json:"period" default:"H1" validate:"oneof=M30 H1 H4 D1"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
	Limit  int    `query:"limit" json:"limit" default:"1000" validate:"gte=1,lte=50000"`
}
