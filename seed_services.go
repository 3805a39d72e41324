package main

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"

	"beauty-clinic-server/config"
)

type seedService struct {
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	Category      string
	ImageURL      string
	Price         float64
	Duration      int
}

// seedServices inserts the starter catalog. It goes through database/sql
// directly so it can run against a freshly migrated schema without touching
// the GORM session, and it is idempotent: a non-empty services table skips
// the whole pass.
func seedServices() {
	db, err := sql.Open("postgres", config.AppConfig.Database.URL)
	if err != nil {
		log.Printf("❌ Seeder could not connect to database: %v", err)
		return
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Printf("❌ Seeder could not ping database: %v", err)
		return
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM services").Scan(&count); err != nil {
		log.Printf("❌ Failed to check services count: %v", err)
		return
	}

	if count > 0 {
		log.Printf("⏭️  Services already exist (%d found), skipping seed", count)
		return
	}

	services := []seedService{
		{
			Name:          "Deep Cleansing Facial",
			NameAr:        "تنظيف البشرة العميق",
			Description:   "Deep pore cleansing with steam, extraction and a soothing mask.",
			DescriptionAr: "تنظيف عميق للمسام بالبخار مع إزالة الشوائب وقناع مهدئ للبشرة",
			Category:      "facial",
			ImageURL:      "https://images.unsplash.com/photo-1570172619644-dfd03ed5d881?w=800&h=600&fit=crop",
			Price:         350.00,
			Duration:      60,
		},
		{
			Name:          "Hydrafacial",
			NameAr:        "هيدرافيشل",
			Description:   "Hydradermabrasion treatment that cleanses, exfoliates and hydrates.",
			DescriptionAr: "جلسة هيدرافيشل لتنظيف وتقشير وترطيب البشرة بعمق",
			Category:      "facial",
			ImageURL:      "https://images.unsplash.com/photo-1616394584738-fc6e612e71b9?w=800&h=600&fit=crop",
			Price:         650.00,
			Duration:      75,
		},
		{
			Name:          "Full Body Laser Hair Removal",
			NameAr:        "إزالة الشعر بالليزر للجسم كامل",
			Description:   "Full body laser session with cooling technology, suitable for all skin types.",
			DescriptionAr: "جلسة ليزر للجسم كامل بتقنية التبريد، مناسبة لجميع أنواع البشرة",
			Category:      "hair_removal",
			ImageURL:      "https://images.unsplash.com/photo-1612817288484-6f916006741a?w=800&h=600&fit=crop",
			Price:         1200.00,
			Duration:      90,
		},
		{
			Name:          "Face Laser Hair Removal",
			NameAr:        "إزالة شعر الوجه بالليزر",
			Description:   "Targeted laser session for the face, gentle on sensitive skin.",
			DescriptionAr: "جلسة ليزر مخصصة للوجه، لطيفة على البشرة الحساسة",
			Category:      "hair_removal",
			ImageURL:      "https://images.unsplash.com/photo-1598300042247-d088f8ab3a91?w=800&h=600&fit=crop",
			Price:         300.00,
			Duration:      30,
		},
		{
			Name:          "Chemical Peel",
			NameAr:        "التقشير الكيميائي",
			Description:   "Medical-grade peel to treat pigmentation, acne scars and uneven tone.",
			DescriptionAr: "تقشير طبي لعلاج التصبغات وآثار حب الشباب وتوحيد لون البشرة",
			Category:      "skin_treatment",
			ImageURL:      "https://images.unsplash.com/photo-1512290923902-8a9f81dc236c?w=800&h=600&fit=crop",
			Price:         550.00,
			Duration:      45,
		},
		{
			Name:          "Microneedling",
			NameAr:        "الإبر الدقيقة",
			Description:   "Collagen induction therapy for scars, fine lines and skin texture.",
			DescriptionAr: "جلسة إبر دقيقة لتحفيز الكولاجين وعلاج الندبات والخطوط الرفيعة",
			Category:      "skin_treatment",
			ImageURL:      "https://images.unsplash.com/photo-1552693673-1bf958298935?w=800&h=600&fit=crop",
			Price:         800.00,
			Duration:      60,
		},
		{
			Name:          "Relaxing Massage",
			NameAr:        "مساج استرخائي",
			Description:   "Full body relaxing massage with aromatic oils.",
			DescriptionAr: "مساج استرخائي للجسم كامل بالزيوت العطرية",
			Category:      "massage",
			ImageURL:      "https://images.unsplash.com/photo-1544161515-4ab6ce6db874?w=800&h=600&fit=crop",
			Price:         400.00,
			Duration:      60,
		},
		{
			Name:          "Skin Consultation",
			NameAr:        "استشارة بشرة",
			Description:   "One-on-one consultation with skin analysis and a personalised plan.",
			DescriptionAr: "استشارة خاصة مع تحليل البشرة وخطة علاجية مخصصة",
			Category:      "other",
			ImageURL:      "https://images.unsplash.com/photo-1579684385127-1ef15d508118?w=800&h=600&fit=crop",
			Price:         150.00,
			Duration:      30,
		},
	}

	insertQuery := `
		INSERT INTO services (
			name, name_ar, description, description_ar, category,
			image_url, price, duration, is_active, created_at, updated_at, deleted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	inserted := 0

	for _, svc := range services {
		_, err := db.Exec(insertQuery,
			svc.Name,
			svc.NameAr,
			svc.Description,
			svc.DescriptionAr,
			svc.Category,
			svc.ImageURL,
			svc.Price,
			svc.Duration,
			true,
			now,
			now,
			nil,
		)
		if err != nil {
			log.Printf("❌ Failed to insert service '%s': %v", svc.Name, err)
			continue
		}
		log.Printf("✅ Seeded service: %s (%s)", svc.Name, svc.Category)
		inserted++
	}

	log.Printf("🎉 Catalog seeding done, %d of %d services inserted", inserted, len(services))
}
