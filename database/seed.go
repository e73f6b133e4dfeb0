// database/seed.go - Seed data for zones, plans, cultural content and
// the curated dictionary. Seeding is idempotent: existing rows are kept.
package database

import (
	"fmt"
	"log"

	"ulenguage/models"
)

var seedZones = []models.Zone{
	{
		ZoneID: "machu_picchu", NameES: "Machu Picchu", NameEN: "Machu Picchu",
		DescriptionES: "Ciudadela inca del siglo XV, una de las Siete Maravillas del Mundo Moderno",
		DescriptionEN: "15th-century Inca citadel, one of the Seven Wonders of the Modern World",
		Longitude:     -72.5449, Latitude: -13.1631, RadiusM: 200,
		Category: models.CategoryArchaeological, Difficulty: "hard", QRCode: "MP2025",
		Reward: models.RewardContent{
			Badge: "🏔️ Explorador Inca", Phrase: "¡Allin p'unchay! (Buenos días)",
			AudioURL: "https://cdn.ulenguage.com/audio/machu_picchu.mp3", Discount: 10,
		},
		Active: true,
	},
	{
		ZoneID: "sacsayhuaman", NameES: "Sacsayhuamán", NameEN: "Sacsayhuaman",
		DescriptionES: "Complejo arquitectónico inca con enormes bloques de piedra",
		DescriptionEN: "Inca architectural complex with huge stone blocks",
		Longitude:     -71.9822, Latitude: -13.5088, RadiusM: 150,
		Category: models.CategoryArchaeological, Difficulty: "easy", QRCode: "SH2025",
		Reward: models.RewardContent{
			Badge: "🗿 Guardián de Piedra", Phrase: "Wayna Qhapaq (Joven poderoso)",
			AudioURL: "https://cdn.ulenguage.com/audio/sacsayhuaman.mp3", Discount: 5,
		},
		Active: true,
	},
	{
		ZoneID: "qorikancha", NameES: "Qorikancha", NameEN: "Qorikancha",
		DescriptionES: "Templo del Sol, antiguo centro religioso inca",
		DescriptionEN: "Temple of the Sun, ancient Inca religious center",
		Longitude:     -71.9675, Latitude: -13.5189, RadiusM: 100,
		Category: models.CategoryReligious, Difficulty: "easy", QRCode: "QK2025",
		Reward: models.RewardContent{
			Badge: "☀️ Hijo del Sol", Phrase: "Inti Raymi (Fiesta del Sol)",
			AudioURL: "https://cdn.ulenguage.com/audio/qorikancha.mp3", Discount: 8,
		},
		Active: true,
	},
	{
		ZoneID: "valle_sagrado", NameES: "Valle Sagrado", NameEN: "Sacred Valley",
		DescriptionES: "Valle del río Urubamba, corazón del imperio inca",
		DescriptionEN: "Urubamba River valley, heart of the Inca empire",
		Longitude:     -71.9847, Latitude: -13.3198, RadiusM: 300,
		Category: models.CategoryNatural, Difficulty: "medium", QRCode: "VS2025",
		Reward: models.RewardContent{
			Badge: "🌄 Caminante del Valle", Phrase: "Urubamba mayu (Río sagrado)",
			AudioURL: "https://cdn.ulenguage.com/audio/valle_sagrado.mp3", Discount: 7,
		},
		Active: true,
	},
	{
		ZoneID: "ollantaytambo", NameES: "Ollantaytambo", NameEN: "Ollantaytambo",
		DescriptionES: "Fortaleza inca con terrazas agrícolas impresionantes",
		DescriptionEN: "Inca fortress with impressive agricultural terraces",
		Longitude:     -72.2636, Latitude: -13.2570, RadiusM: 150,
		Category: models.CategoryArchaeological, Difficulty: "medium", QRCode: "OT2025",
		Reward: models.RewardContent{
			Badge: "🏯 Conquistador de Alturas", Phrase: "Patallaqta (Ciudad en las alturas)",
			AudioURL: "https://cdn.ulenguage.com/audio/ollantaytambo.mp3", Discount: 6,
		},
		Active: true,
	},
	{
		ZoneID: "pisac", NameES: "Pisac", NameEN: "Pisac",
		DescriptionES: "Ruinas incas y mercado artesanal tradicional",
		DescriptionEN: "Inca ruins and traditional artisan market",
		Longitude:     -71.8479, Latitude: -13.4211, RadiusM: 150,
		Category: models.CategoryCultural, Difficulty: "easy", QRCode: "PS2025",
		Reward: models.RewardContent{
			Badge: "🛍️ Comerciante Inca", Phrase: "Qhatu (Mercado)",
			AudioURL: "https://cdn.ulenguage.com/audio/pisac.mp3", Discount: 5,
		},
		Active: true,
	},
	{
		ZoneID: "plaza_armas_cusco", NameES: "Plaza de Armas de Cusco", NameEN: "Cusco Main Square",
		DescriptionES: "Centro histórico de Cusco, antigua plaza inca",
		DescriptionEN: "Historic center of Cusco, former Inca plaza",
		Longitude:     -71.9675, Latitude: -13.5164, RadiusM: 100,
		Category: models.CategoryUrban, Difficulty: "easy", QRCode: "PA2025",
		Reward: models.RewardContent{
			Badge: "🏛️ Ciudadano Imperial", Phrase: "Qosqo (Ombligo del mundo)",
			AudioURL: "https://cdn.ulenguage.com/audio/plaza_armas.mp3", Discount: 3,
		},
		Active: true,
	},
	{
		ZoneID: "laguna_humantay", NameES: "Laguna Humantay", NameEN: "Humantay Lake",
		DescriptionES: "Laguna turquesa de origen glaciar en los Andes",
		DescriptionEN: "Turquoise glacial lake in the Andes",
		Longitude:     -72.5864, Latitude: -13.3447, RadiusM: 200,
		Category: models.CategoryNatural, Difficulty: "hard", QRCode: "LH2025",
		Reward: models.RewardContent{
			Badge: "💧 Guardián de Aguas", Phrase: "Qucha (Laguna)",
			AudioURL: "https://cdn.ulenguage.com/audio/humantay.mp3", Discount: 12,
		},
		Active: true,
	},
	{
		ZoneID: "montana_colores", NameES: "Montaña de Colores", NameEN: "Rainbow Mountain",
		DescriptionES: "Vinicunca, montaña multicolor a 5200 msnm",
		DescriptionEN: "Vinicunca, multicolored mountain at 5200 masl",
		Longitude:     -71.3028, Latitude: -13.8689, RadiusM: 250,
		Category: models.CategoryNatural, Difficulty: "hard", QRCode: "MC2025",
		Reward: models.RewardContent{
			Badge: "🌈 Caminante Arcoíris", Phrase: "Vinicunca (Cerro de colores)",
			AudioURL: "https://cdn.ulenguage.com/audio/vinicunca.mp3", Discount: 15,
		},
		Active: true,
	},
	{
		ZoneID: "moray", NameES: "Moray", NameEN: "Moray",
		DescriptionES: "Laboratorio agrícola inca con terrazas circulares",
		DescriptionEN: "Inca agricultural laboratory with circular terraces",
		Longitude:     -72.1950, Latitude: -13.3289, RadiusM: 120,
		Category: models.CategoryArchaeological, Difficulty: "medium", QRCode: "MR2025",
		Reward: models.RewardContent{
			Badge: "🌾 Sabio Agricultor", Phrase: "Chakra (Campo de cultivo)",
			AudioURL: "https://cdn.ulenguage.com/audio/moray.mp3", Discount: 6,
		},
		Active: true,
	},
}

var seedPlans = []models.Plan{
	{
		Name: "Gratuito", Description: "Plan básico para turistas casuales", Price: 0,
		Features: []string{"OCR 10/día", "Traducción básica", "Acceso a contenido cultural básico"},
	},
	{
		Name: "Premium", Description: "Plan completo para exploradores culturales", Price: 5.99,
		Features: []string{
			"OCR ilimitado", "Audio pronunciación", "Sin anuncios",
			"Contenido cultural exclusivo", "Mapa cultural offline", "Soporte prioritario",
		},
	},
}

var seedContents = []models.Content{
	{Term: "Allin p'unchay", TranslationES: "Buenos días", TranslationEN: "Good morning",
		Context: "Se usa hasta el mediodía en comunidades rurales de Cusco", Pronunciation: "AH-lyeen POON-chay", Category: "saludos"},
	{Term: "Allin tuta", TranslationES: "Buenas noches", TranslationEN: "Good night",
		Context: "Saludo nocturno tradicional andino", Pronunciation: "AH-lyeen TOO-tah", Category: "saludos"},
	{Term: "Napaykullayki", TranslationES: "Te saludo", TranslationEN: "I greet you",
		Context: "Saludo formal respetuoso, usado con personas mayores", Pronunciation: "nah-pay-koo-LLY-kee", Category: "saludos"},
	{Term: "Imaynalla kashanki", TranslationES: "¿Cómo estás?", TranslationEN: "How are you?",
		Context: "Pregunta común en el saludo cotidiano", Pronunciation: "ee-may-NAH-lyah kah-SHAHN-kee", Category: "saludos"},
	{Term: "Allinmi kani", TranslationES: "Estoy bien", TranslationEN: "I am fine",
		Context: "Respuesta típica al saludo", Pronunciation: "ah-LYEEN-mee KAH-nee", Category: "saludos"},
	{Term: "Mama", TranslationES: "Madre", TranslationEN: "Mother",
		Context: "Término de respeto para la madre en la cultura andina", Pronunciation: "MAH-mah", Category: "familia"},
	{Term: "Tayta", TranslationES: "Padre", TranslationEN: "Father",
		Context: "Término respetuoso para el padre", Pronunciation: "TAY-tah", Category: "familia"},
	{Term: "Yaku", TranslationES: "Agua", TranslationEN: "Water",
		Context: "Elemento sagrado en la cosmovisión andina", Pronunciation: "YAH-koo", Category: "naturaleza"},
	{Term: "Inti", TranslationES: "Sol", TranslationEN: "Sun",
		Context: "Deidad principal del imperio inca", Pronunciation: "EEN-tee", Category: "naturaleza"},
	{Term: "Pachamama", TranslationES: "Madre Tierra", TranslationEN: "Mother Earth",
		Context: "Divinidad andina de la tierra y la fertilidad", Pronunciation: "pah-chah-MAH-mah", Category: "naturaleza"},
}

var seedTerms = []models.QuechuaTerm{
	{Spanish: "hola", QuechuaCusqueno: "napaykullayki", Category: "saludos",
		Examples: []string{"Napaykullayki, ¿imaynalla kashanki?"}},
	{Spanish: "buenos días", QuechuaCusqueno: "allin p'unchay", Category: "saludos"},
	{Spanish: "buenas noches", QuechuaCusqueno: "allin tuta", Category: "saludos"},
	{Spanish: "gracias", QuechuaCusqueno: "sulpayki", Category: "cortesía",
		Examples: []string{"Sulpayki, tayta."}},
	{Spanish: "agua", QuechuaCusqueno: "yaku", Category: "naturaleza"},
	{Spanish: "sol", QuechuaCusqueno: "inti", Category: "naturaleza"},
	{Spanish: "montaña", QuechuaCusqueno: "urqu", Category: "naturaleza"},
	{Spanish: "casa", QuechuaCusqueno: "wasi", Category: "vivienda"},
	{Spanish: "comida", QuechuaCusqueno: "mikhuna", Category: "alimentación"},
	{Spanish: "amigo", QuechuaCusqueno: "masi", Category: "social"},
}

// SeedCounts summarizes what a seed run created.
type SeedCounts struct {
	Zones    int `json:"zones"`
	Plans    int `json:"plans"`
	Contents int `json:"contents"`
	Terms    int `json:"terms"`
}

// RunSeeds inserts any missing seed rows. Zones are validated before
// insertion; a bad seed zone is a programming error and aborts the run.
func RunSeeds() (*SeedCounts, error) {
	db := GetDB()
	counts := &SeedCounts{}

	for i := range seedZones {
		zone := seedZones[i]
		if err := zone.Validate(); err != nil {
			return nil, fmt.Errorf("invalid seed zone: %w", err)
		}
		res := db.Where("zone_id = ?", zone.ZoneID).FirstOrCreate(&zone)
		if res.Error != nil {
			return nil, fmt.Errorf("seed zone %s: %w", zone.ZoneID, res.Error)
		}
		counts.Zones += int(res.RowsAffected)
	}

	for i := range seedPlans {
		plan := seedPlans[i]
		res := db.Where("name = ?", plan.Name).FirstOrCreate(&plan)
		if res.Error != nil {
			return nil, fmt.Errorf("seed plan %s: %w", plan.Name, res.Error)
		}
		counts.Plans += int(res.RowsAffected)
	}

	for i := range seedContents {
		content := seedContents[i]
		res := db.Where("term = ?", content.Term).FirstOrCreate(&content)
		if res.Error != nil {
			return nil, fmt.Errorf("seed content %s: %w", content.Term, res.Error)
		}
		counts.Contents += int(res.RowsAffected)
	}

	for i := range seedTerms {
		term := seedTerms[i]
		normalized := models.NormalizeTerm(term.Spanish)
		res := db.Where("spanish = ?", normalized).FirstOrCreate(&term)
		if res.Error != nil {
			return nil, fmt.Errorf("seed term %s: %w", term.Spanish, res.Error)
		}
		counts.Terms += int(res.RowsAffected)
	}

	log.Printf("✅ Seed completed: %d zones, %d plans, %d contents, %d terms created",
		counts.Zones, counts.Plans, counts.Contents, counts.Terms)
	return counts, nil
}
