package models

// ConfessionCounterID is the _id of the counter document that numbers confessions.
const ConfessionCounterID = "confession"

type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
