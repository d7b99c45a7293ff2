package config

// Application constants for the AUCCA participant dashboard
const (
	AppName     = "Escuela Regenerativa Ambiental AUCCA"
	AppTitle    = "Escuela Regenerativa Ambiental de Talagante"
	AppSubtitle = "Visualizador de participantes · 2025"
	AppVersion  = "1.0.0"

	// DefaultSheetURL is the share link of the registration form responses.
	DefaultSheetURL   = "https://docs.google.com/spreadsheets/d/1aY3yE7h2Q_PvUVzTG55rWmaiSybk4qKDblvPDp2PWgo/edit?usp=sharing"
	DefaultAccessCode = "compost"
)

// Response sheet column labels, as they appear in the form export after
// trimming surrounding whitespace.
const (
	ColumnName      = "Nombre completo"
	ColumnPhone     = "Teléfono"
	ColumnEmail     = "Dirección de correo electrónico"
	ColumnTerritory = "Territorio donde vives:"
	ColumnGender    = "Género"
	ColumnCaregiver = "¿Eres cuidadora o cuidador de niños, niñas, personas mayores u otras personas dependientes?\n(En caso afirmativo, te contamos que durante los talleres habrá un espacio paralelo de actividades para infancias entre 5 y 12 años, para que puedas participar con tranquilidad)."
	ColumnChildren  = "Nombre y edad de cada niño/a"
	ColumnMotives   = "¿Qué te motiva a participar en la Escuela Regenerativa Ambiental de Talagante y qué dudas o comentarios quieres compartirnos?\n(Esta respuesta es abierta y nos ayudará a mejorar la experiencia y acompañar mejor tu proceso)."
)

// Workshop is a fixed catalog entry of the school programme.
type Workshop struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Heading     string `json:"heading"`
	Schedule    string `json:"schedule"`
	Description string `json:"description"`
}

// Workshops is the programme, in selection order.
var Workshops = []Workshop{
	{
		Number:      1,
		Title:       "Taller 1: Compostaje y Lombricultura",
		Heading:     "Taller 1: Compostaje y Lombricultura",
		Schedule:    "Sábado 18 de octubre de 2025 – 11:00 a 13:00 hrs",
		Description: "Este taller entrega herramientas para transformar los residuos orgánicos de la cocina y el jardín en abono natural. Aprenderás el paso a paso del compostaje y cómo criar lombrices californianas que ayudan a producir un humus rico en nutrientes para la tierra.",
	},
	{
		Number:      2,
		Title:       "Taller 2: Reproducción de especies vegetales",
		Heading:     "Taller 2: Reproducción de especies vegetales",
		Schedule:    "Sábado 25 de octubre de 2025 – 11:00 a 13:00 hrs",
		Description: "Conoceremos distintas técnicas para multiplicar plantas, como esquejes, estacas y división de raíces. Este taller busca entregar conocimientos básicos para aumentar la diversidad de especies en tu huerto o jardín, favoreciendo la soberanía alimentaria.",
	},
	{
		Number:      3,
		Title:       "Taller 3: Guardado de semillas",
		Heading:     "Taller 3: Guardado de semillas",
		Schedule:    "Sábado 25 de octubre de 2025 – 16:00 a 18:00 hrs",
		Description: "Aprenderás cómo cosechar, limpiar, seleccionar y conservar semillas para la siguiente temporada de cultivo. Este taller busca rescatar prácticas tradicionales y comunitarias de resguardo de semillas, fundamentales para mantener la biodiversidad agrícola y la autonomía en la producción de alimentos.",
	},
	{
		Number:      4,
		Title:       "Taller 4: Carpintería (Punto limpio con enfoque de género)",
		Heading:     "Taller 4: Carpintería para la construcción de punto limpio (con enfoque de género)",
		Schedule:    "Sábado 01 de noviembre de 2025 – 11:00 a 13:00 hrs",
		Description: "Aprenderemos técnicas básicas de carpintería para fabricar estructuras de madera que permitan separar y almacenar residuos reciclables en el hogar.",
	},
	{
		Number:      5,
		Title:       "Taller 5: Construcción de invernadero",
		Heading:     "Taller 5: Construcción de invernadero para viverismo",
		Schedule:    "Sábado 8 de noviembre de 2025 – 11:00 a 18:00 hrs (jornada completa)",
		Description: "Durante una jornada completa trabajaremos en equipo para levantar un invernadero en el centro eco pedagógico AUCCA.",
	},
	{
		Number:      6,
		Title:       "Taller 6: Cosecha de aguas lluvias",
		Heading:     "Taller 6: Cosecha de aguas lluvias",
		Schedule:    "Sábado 15 de Noviembre de 2025 – 11:00 a 13:00 hrs",
		Description: "Exploraremos métodos simples y prácticos para captar y almacenar agua de lluvia en nuestras casas y huertos.",
	},
}

// AllWorkshopsLabel is the selection label of the all-workshops view.
const AllWorkshopsLabel = "Ver todo (todos los talleres)"

// WorkshopByNumber returns the catalog entry for n.
func WorkshopByNumber(n int) (Workshop, bool) {
	for _, w := range Workshops {
		if w.Number == n {
			return w, true
		}
	}
	return Workshop{}, false
}

// KnowledgeQuestions maps a workshop number to the self-assessed knowledge
// question (1–5 scale) asked for its topic.
var KnowledgeQuestions = map[int]string{
	1: "¿Qué tanta experiencia tienes en el compostaje y la crianza de lombrices para gestionar tus residuos orgánicos?",
	2: "¿Tienes experiencia o conocimientos en la multiplicación de plantas y la propagación de especies vegetales?",
	3: "¿Qué tan familiarizado/a estás con las prácticas de cosecha, selección y conservación de semillas?",
	4: "¿Qué tan familiarizado/a estás con la carpintería y las herramientas que se usan para construir con madera?",
	5: "¿Qué tanto sabes sobre los invernaderos y su uso para favorecer el cultivo?",
	6: "¿Qué tan familiarizado/a estás con las formas de recolectar y guardar agua de lluvia?",
}

// RecyclingTopic and RecyclingQuestion describe the general knowledge question
// that is not tied to a single workshop.
const (
	RecyclingTopic    = "Reciclaje y gestión de residuos"
	RecyclingQuestion = "¿Cuál es tu nivel de conocimiento y práctica sobre cómo reciclar y gestionar residuos en tu hogar y comunidad?"
)
