package testutil

import (
	"bytes"
	"encoding/csv"

	"github.com/LinFrancis/escuela-aucca/internal/config"
)

// Workshop attendance column labels as exported by the registration form
const (
	Taller1Column = "Taller 1: Compostaje y Lombricultura"
	Taller2Column = "Taller 2: Reproducción de especies vegetales"
	Taller3Column = "Taller 3: Guardado de semillas"
	Taller4Column = "Taller 4: Carpintería (Punto Limpio con enfoque de género)"
	Taller5Column = "Taller 5: Construcción de invernadero"
	Taller6Column = "Taller 6: Cosecha de aguas lluvias"
)

// ResponseHeader returns the header row of the fixture sheet
func ResponseHeader() []string {
	return []string{
		"Marca temporal",
		config.ColumnEmail,
		config.ColumnName,
		config.ColumnPhone,
		config.ColumnTerritory,
		config.ColumnGender,
		config.ColumnCaregiver,
		config.ColumnChildren,
		Taller1Column,
		Taller2Column,
		Taller3Column,
		Taller4Column,
		Taller5Column,
		Taller6Column,
		config.KnowledgeQuestions[1],
		config.KnowledgeQuestions[3],
		config.RecyclingQuestion,
		config.ColumnMotives,
	}
}

// ResponseRecords returns five fixture responses.
//
// Taller 1 has 2 "Participaré", 1 "Asistiré con infancias", 1 "No participaré"
// and 1 undecided (Carla). Its filtered set is Ana, Benito, Diego and Elena.
func ResponseRecords() [][]string {
	return [][]string{
		{"2025/09/01 10:00:00", "ana@example.cl", "Ana Pérez", "+56911111111", "Talagante", "Femenino",
			"Sí, tengo hijos", "Tomás (7)",
			"Participaré", "No participaré", "Asistiré con infancias", "No estoy seguro/a todavía", "Participaré", "",
			"4", "2", "3", "Aprender a compostar"},
		{"2025/09/01 11:00:00", "benito@example.cl", "Benito Soto", "+56922222222", "El Monte", "Masculino",
			"No", "",
			"Participaré", "Participaré", "No estoy seguro/a todavía", "Participaré", "", "No participaré",
			"5", "x", "4", "."},
		{"2025/09/02 09:30:00", "carla@example.cl", "Carla Rojas", "+56933333333", "Peñaflor", "Femenino",
			"sí", "",
			"No estoy seguro/a todavía", "Asistiré con infancias", "Participaré", "", "", "",
			"2", "", "", "Conocer a mis vecinas"},
		{"2025/09/03 18:15:00", "diego@example.cl", "Diego Muñoz", "+56944444444", "Isla de Maipo", "Masculino",
			"N/A", "",
			"No participaré", "", "", "Participaré", "", "",
			"", "", "5", ""},
		{"2025/09/04 20:45:00", "elena@example.cl", "Elena Castro", "+56955555555", "Talagante", "Otro",
			"Sí", "Luz (5), Sol (9)",
			"Asistiré con infancias", "No estoy seguro/a todavía", "Participaré", "", "", "",
			"3", "4", "1", "Cuidar el agua"},
	}
}

// ResponsesCSV renders the fixture sheet as CSV, the way the share link
// export serves it.
func ResponsesCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(ResponseHeader())
	_ = w.WriteAll(ResponseRecords())
	return buf.Bytes()
}
