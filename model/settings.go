package model

import "gorm.io/gorm"

// Settings contains the owner's company data used on exported documents.
type Settings struct {
	gorm.Model
	CompanyName    string
	InvoiceContact string
	InvoiceEMail   string
	ZIP            string
	Address1       string
	Address2       string
	City           string
	CountryCode    string
	VATID          string
	BankIBAN       string
	BankName       string
	BankBIC        string
}

// LoadSettings loads the owner settings.
func (s *Store) LoadSettings(ownerID any) (*Settings, error) {
	c := &Settings{}
	result := s.db.FirstOrInit(c, ownerID)
	return c, result.Error
}

// SaveSettings saves the owner's settings.
func (s *Store) SaveSettings(settings *Settings) error {
	return s.db.Save(settings).Error
}
