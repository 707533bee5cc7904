package models

type LicenseStatus string

const (
	LicenseStatusActive      LicenseStatus = "ACTIVE"
	LicenseStatusExpiresSoon LicenseStatus = "EXPIRES_SOON"
	LicenseStatusExpired     LicenseStatus = "EXPIRED"
	LicenseStatusBlocked     LicenseStatus = "BLOCKED"
)

var licenseStatusHumanName = map[LicenseStatus]string{
	LicenseStatusActive:      "Активна",
	LicenseStatusExpiresSoon: "Истекает",
	LicenseStatusExpired:     "Истекла",
	LicenseStatusBlocked:     "Заблокирована",
}

func (s LicenseStatus) ToHuman() string {
	if human, exist := licenseStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s LicenseStatus) AllowCreate() bool {
	return s == LicenseStatusActive || s == LicenseStatusExpiresSoon
}
