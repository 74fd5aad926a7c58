package domain

import (
	"time"
)

// StoreConfigID is the fixed identifier of the config singleton row,
// mirroring the remote document store's single "config/main" document.
const StoreConfigID int64 = 1

// StoreConfig is the process-wide store configuration. Exactly one active
// row exists; defaults are supplied when none is persisted.
type StoreConfig struct {
	ID             int64     `gorm:"primaryKey" json:"-"`
	StoreName      string    `json:"storeName"`
	WhatsAppNumber string    `gorm:"column:whatsapp_number" json:"whatsappNumber"`
	BankName       string    `json:"bankName"`
	BankAccount    string    `json:"bankAccount"`
	BankRUT        string    `gorm:"column:bank_rut" json:"bankRut"`
	BankEmail      string    `json:"bankEmail"`
	AdminPassword  string    `json:"adminPassword,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (StoreConfig) TableName() string {
	return "store_config"
}

// AuditLog records administrator actions: login, product save/delete,
// config save, database reset.
type AuditLog struct {
	ID        int64     `json:"id,string"`
	OprName   string    `json:"opr_name"`
	OprIp     string    `json:"opr_ip"`
	OptAction string    `json:"opt_action"`
	OptDesc   string    `json:"opt_desc"`
	OptTime   time.Time `json:"opt_time"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
