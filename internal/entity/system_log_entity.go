package entity

import "time"

type SystemLog struct {
	Id            uint
	Timestamp     time.Time
	Message       string
	SessionId     *string
	RequestMethod *string
	RequestURI    *string
	RequestData   *string
	UserId        *uint
}
