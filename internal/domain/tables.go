package domain

var Tables = []interface{}{
	&Product{},
	&StoreConfig{},
	&AuditLog{},
}
