package model

import "time"

type SystemLog struct {
	LogID         uint      `gorm:"column:logid;primaryKey;autoIncrement"`
	Timestamp     time.Time `gorm:"column:timestamp;not null;index:idx_logs_timestamp"`
	Message       string    `gorm:"column:message;not null"`
	SessionID     *string   `gorm:"column:session_id"`
	RequestMethod *string   `gorm:"column:request_method"`
	RequestURI    *string   `gorm:"column:request_uri"`
	RequestData   *string   `gorm:"column:request_data"`
	UserID        *uint     `gorm:"column:userid;index:idx_logs_userid"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}
