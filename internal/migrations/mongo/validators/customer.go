package validators

import "go.mongodb.org/mongo-driver/bson"

var CustomerValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"phone",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
				"pattern":   "^[^@\\s]+@[^@\\s]+$",
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  "^\\+[1-9]\\d{1,14}$",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
