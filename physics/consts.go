// Package physics holds the built-in model implementations. Each property
// family has a function signature and a kind table; the functions are pure
// and vectorized, broadcasting length-1 inputs against longer arrays.
//
// Units: temperatures in K, densities in cm^-3, energies in eV, mobilities
// in cm^2/Vs, velocities in cm/s.
package physics

const (
	Charge       = 1.602176634e-19  // Elementary charge (C)
	Boltzmann    = 1.380649e-23     // Boltzmann constant (J/K)
	BoltzmannEV  = 8.617333262e-5   // Boltzmann constant (eV/K)
	ElectronMass = 9.1093837015e-31 // Electron rest mass (kg)

	RoomTemp = 300.0 // Reference temperature of the fits (K)
)

// Property families. The names double as model table file names.
const (
	FamilyIntrinsicBandGap = "intrinsic_bandgap"
	FamilyBandGapNarrowing = "bandgap_narrowing"
	FamilyIntrinsicDensity = "intrinsic_carrier_density"
	FamilyMobility         = "mobility"
	FamilyIonisation       = "ionisation"
	FamilyThermalVelocity  = "thermal_velocity"
)

// Families lists every property family.
var Families = []string{
	FamilyIntrinsicBandGap,
	FamilyBandGapNarrowing,
	FamilyIntrinsicDensity,
	FamilyMobility,
	FamilyIonisation,
	FamilyThermalVelocity,
}
