package model

type Room struct {
	ID          string `json:"id" bson:"_id" validate:"required"`
	Name        string `json:"name" bson:"name" validate:"required,max=100"`
	Code        string `json:"code" bson:"code" validate:"required,max=30"`
	Description string `json:"description" bson:"description"`
	CreatedAt   string `json:"created_at" bson:"created_at"`
	ImageURL    string `json:"image_url" bson:"image_url"`
}
