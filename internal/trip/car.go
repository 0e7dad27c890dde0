package trip

type CarType string

const (
	Hatchback          CarType = "HATCHBACK"
	Sedan4Plus1        CarType = "SEDAN_4_PLUS_1"
	NewSedan2022Model  CarType = "NEW_SEDAN_2022_MODEL"
	Etios4Plus1        CarType = "ETIOS_4_PLUS_1"
	SUV                CarType = "SUV"
	SUV6Plus1          CarType = "SUV_6_PLUS_1"
	SUV7Plus1          CarType = "SUV_7_PLUS_1"
	Innova             CarType = "INNOVA"
	Innova6Plus1       CarType = "INNOVA_6_PLUS_1"
	Innova7Plus1       CarType = "INNOVA_7_PLUS_1"
	InnovaCrysta       CarType = "INNOVA_CRYSTA"
	InnovaCrysta6Plus1 CarType = "INNOVA_CRYSTA_6_PLUS_1"
	InnovaCrysta7Plus1 CarType = "INNOVA_CRYSTA_7_PLUS_1"
)

const DefaultCarType = Hatchback

var carTypes = []CarType{
	Hatchback,
	Sedan4Plus1,
	NewSedan2022Model,
	Etios4Plus1,
	SUV,
	SUV6Plus1,
	SUV7Plus1,
	Innova,
	Innova6Plus1,
	Innova7Plus1,
	InnovaCrysta,
	InnovaCrysta6Plus1,
	InnovaCrysta7Plus1,
}

func CarTypes() []CarType {
	result := make([]CarType, len(carTypes))
	copy(result, carTypes)
	return result
}

func (c CarType) IsKnown() bool {
	for _, carType := range carTypes {
		if carType == c {
			return true
		}
	}
	return false
}
