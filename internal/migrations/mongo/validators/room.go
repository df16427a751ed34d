package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"number",
			"type",
			"price",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"number": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 20,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"SINGLE",
					"DOUBLE",
					"TWIN",
					"TRIPLE",
					"QUAD",
					"QUEEN",
					"KING",
					"STUDIO",
					"SUITE",
					"JUNIOR_SUITE",
					"FAMILY",
					"CONNECTING",
					"ACCESSIBLE",
					"DELUXE",
					"EXECUTIVE",
					"PRESIDENTIAL",
				},
			},

			"price": bson.M{
				"bsonType": "decimal",
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
