package validators

import "go.mongodb.org/mongo-driver/bson"

// Timestamps arrive either as BSON dates or as ISO strings.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id",
			"start_time",
			"end_time",
			"status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"room_id": bson.M{
				"bsonType": []string{"string", "objectId"},
			},

			"start_time": bson.M{
				"bsonType": []string{"date", "string"},
			},

			"end_time": bson.M{
				"bsonType": []string{"date", "string"},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"created",
					"completed",
					"cancelled",
					"criado",
					"concluido",
					"concluído",
					"cancelado",
				},
			},

			"user_email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"user_phone": bson.M{
				"bsonType":  "string",
				"maxLength": 32,
			},

			"created_at": bson.M{
				"bsonType": []string{"date", "string"},
			},
		},
	},
}
