package consts

const (
	CHARGE   = 1.6021918e-19 // Elementary charge (C)
	EPSILON0 = 8.854e-12     // Vacuum permittivity (F/m)
)
