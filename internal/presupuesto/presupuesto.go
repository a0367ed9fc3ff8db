// Package presupuesto deriva el avance presupuestario de una obra a
// partir del devengado acumulado y la inversión planificada de su
// categoría.
package presupuesto

import "obras-backend/internal/models"

// CalcularPorcentaje deriva el porcentaje de avance. Una inversión
// planificada de cero o un devengado nunca cargado valen 0%, sin
// divisiones por cero ni NaN.
func CalcularPorcentaje(devengado *float64, montoPlanificado float64) float64 {
	if devengado == nil || montoPlanificado == 0 {
		return 0
	}
	return *devengado / montoPlanificado * 100
}

// Asignacion es la porción del monto planificado que corresponde a una
// actividad cuando la ponderación está activa.
type Asignacion struct {
	ActividadID   string  `json:"actividadId"`
	Nombre        string  `json:"nombre"`
	Porcentaje    float64 `json:"porcentaje"`
	MontoAsignado float64 `json:"montoAsignado"`
}

// Repartir asigna el monto planificado entre las actividades de la obra
// en partes iguales (100/n por actividad). La función se llama
// "ponderación" en la interfaz aunque el reparto no pondera por esfuerzo
// ni duración; se conserva el comportamiento tal cual.
func Repartir(monto float64, asignadas []models.ActividadAsignada, nombres map[string]string) []Asignacion {
	if len(asignadas) == 0 {
		return []Asignacion{}
	}

	porcentaje := 100 / float64(len(asignadas))
	resultado := make([]Asignacion, 0, len(asignadas))
	for _, a := range asignadas {
		resultado = append(resultado, Asignacion{
			ActividadID:   a.ActividadID,
			Nombre:        nombres[a.ActividadID],
			Porcentaje:    porcentaje,
			MontoAsignado: monto * (porcentaje / 100),
		})
	}
	return resultado
}
