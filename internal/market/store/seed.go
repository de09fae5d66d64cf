package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	marketModel "edupath/internal/market/models"
	id "edupath/pkg/domain"
)

// Seed loads the bundled Cameroonian job-market dataset into an empty store.
func Seed(ctx context.Context, s *InMemory) error {
	now := time.Now().UTC()

	it := marketModel.Sector{
		ID:                    id.SectorID(uuid.New()),
		Name:                  "Information Technology",
		NameFr:                "Technologies de l'Information",
		Description:           "Software development, IT services, and digital innovation",
		DescriptionFr:         "Développement logiciel, services IT et innovation numérique",
		GrowthRate:            8.5,
		EmploymentSize:        50000,
		DemandLevel:           marketModel.DemandVeryHigh,
		SkillShortage:         true,
		ContributionToGDP:     3.2,
		AverageSalaryRange:    &marketModel.SalaryBand{Min: 300000, Max: 1500000},
		EntrepreneurshipScore: 85,
		StartupCapital:        marketModel.StartupCapital{Low: true, Medium: true},
		RelatedPrograms:       []string{"UY1_CS_BSC"},
		RequiredSkills:        []string{"Programming", "Problem Solving", "Database Management"},
		GovernmentPriority:    true,
		DevelopmentPrograms:   []string{"Digital Cameroon 2020", "Tech Hubs Initiative"},
		IsActive:              true,
		CreatedAt:             now,
	}
	healthcare := marketModel.Sector{
		ID:                    id.SectorID(uuid.New()),
		Name:                  "Healthcare",
		NameFr:                "Santé",
		Description:           "Medical services, pharmaceuticals, and health technology",
		DescriptionFr:         "Services médicaux, pharmaceutiques et technologie de santé",
		GrowthRate:            6.2,
		EmploymentSize:        120000,
		DemandLevel:           marketModel.DemandVeryHigh,
		SkillShortage:         true,
		ContributionToGDP:     5.8,
		AverageSalaryRange:    &marketModel.SalaryBand{Min: 400000, Max: 2500000},
		EntrepreneurshipScore: 65,
		StartupCapital:        marketModel.StartupCapital{Medium: true, High: true},
		RelatedPrograms:       []string{"UY1_MED_MD"},
		RequiredSkills:        []string{"Medical Knowledge", "Patient Care", "Diagnostics"},
		GovernmentPriority:    true,
		DevelopmentPrograms:   []string{"Universal Health Coverage", "Telemedicine Initiative"},
		IsActive:              true,
		CreatedAt:             now,
	}
	agriculture := marketModel.Sector{
		ID:                    id.SectorID(uuid.New()),
		Name:                  "Agriculture & Agribusiness",
		NameFr:                "Agriculture et Agrobusiness",
		Description:           "Modern farming, food processing, and agricultural technology",
		DescriptionFr:         "Agriculture moderne, transformation alimentaire et technologie agricole",
		GrowthRate:            4.8,
		EmploymentSize:        800000,
		DemandLevel:           marketModel.DemandHigh,
		ContributionToGDP:     18.5,
		AverageSalaryRange:    &marketModel.SalaryBand{Min: 150000, Max: 800000},
		EntrepreneurshipScore: 90,
		StartupCapital:        marketModel.StartupCapital{Low: true, Medium: true, High: true},
		RequiredSkills:        []string{"Agricultural Science", "Business Management", "Marketing"},
		GovernmentPriority:    true,
		DevelopmentPrograms:   []string{"Agriculture Modernization", "Rural Development"},
		IsActive:              true,
		CreatedAt:             now,
	}
	manufacturing := marketModel.Sector{
		ID:                    id.SectorID(uuid.New()),
		Name:                  "Manufacturing",
		NameFr:                "Industrie Manufacturière",
		Description:           "Industrial production, textiles, and manufacturing processes",
		DescriptionFr:         "Production industrielle, textiles et processus de fabrication",
		GrowthRate:            3.5,
		EmploymentSize:        200000,
		DemandLevel:           marketModel.DemandMedium,
		ContributionToGDP:     12.3,
		AverageSalaryRange:    &marketModel.SalaryBand{Min: 180000, Max: 600000},
		EntrepreneurshipScore: 70,
		StartupCapital:        marketModel.StartupCapital{Medium: true, High: true},
		RelatedPrograms:       []string{"UB_ENG_BSC"},
		RequiredSkills:        []string{"Technical Skills", "Quality Control", "Operations Management"},
		DevelopmentPrograms:   []string{"Industrial Development Plan"},
		IsActive:              true,
		CreatedAt:             now,
	}

	for _, sec := range []marketModel.Sector{it, healthcare, agriculture, manufacturing} {
		if err := s.PutSector(ctx, sec); err != nil {
			return err
		}
	}

	skills := []marketModel.Skill{
		{
			ID:                     id.SkillID(uuid.New()),
			Name:                   "Python Programming",
			NameFr:                 "Programmation Python",
			Category:               "technical",
			Description:            "Programming in Python language for various applications",
			DemandLevel:            marketModel.DemandVeryHigh,
			Trend:                  "growing",
			DifficultyLevel:        "intermediate",
			LearningTimeMonths:     6,
			CertificationAvailable: true,
			SalaryImpact:           25.0,
			FreelancePotential:     true,
			RemoteWorkCompatible:   true,
			RelatedSectors:         []id.SectorID{it.ID},
			ToolsTechnologies:      []string{"Django", "Flask", "NumPy", "Pandas"},
			IsActive:               true,
			CreatedAt:              now,
		},
		{
			ID:                     id.SkillID(uuid.New()),
			Name:                   "Digital Marketing",
			NameFr:                 "Marketing Numérique",
			Category:               "creative",
			Description:            "Online marketing strategies and digital advertising",
			DemandLevel:            marketModel.DemandHigh,
			Trend:                  "growing",
			DifficultyLevel:        "beginner",
			LearningTimeMonths:     3,
			CertificationAvailable: true,
			SalaryImpact:           15.0,
			FreelancePotential:     true,
			RemoteWorkCompatible:   true,
			RelatedSectors:         []id.SectorID{it.ID, agriculture.ID},
			ToolsTechnologies:      []string{"Google Analytics", "Facebook Ads", "SEO Tools"},
			IsActive:               true,
			CreatedAt:              now,
		},
		{
			ID:                     id.SkillID(uuid.New()),
			Name:                   "Project Management",
			NameFr:                 "Gestion de Projet",
			Category:               "soft",
			Description:            "Planning, executing, and managing projects effectively",
			DemandLevel:            marketModel.DemandHigh,
			Trend:                  "stable",
			DifficultyLevel:        "intermediate",
			LearningTimeMonths:     4,
			CertificationAvailable: true,
			SalaryImpact:           20.0,
			RemoteWorkCompatible:   true,
			RelatedSectors:         []id.SectorID{it.ID, manufacturing.ID},
			ToolsTechnologies:      []string{"MS Project", "Asana", "Trello"},
			IsActive:               true,
			CreatedAt:              now,
		},
	}
	for _, sk := range skills {
		if err := s.PutSkill(ctx, sk); err != nil {
			return err
		}
	}

	careerPaths := []marketModel.CareerPath{
		{
			ID:                   id.CareerPathID(uuid.New()),
			Name:                 "Software Developer",
			NameFr:               "Développeur Logiciel",
			Description:          "Design and develop software applications",
			SectorID:             it.ID,
			EntryLevelPositions:  []string{"Junior Developer", "Programmer Trainee"},
			MidLevelPositions:    []string{"Software Developer", "Full Stack Developer"},
			SeniorLevelPositions: []string{"Senior Developer", "Tech Lead", "Software Architect"},
			RequiredEducation:    []string{"Bachelor in Computer Science", "Software Engineering"},
			RequiredSkills:       []string{"Programming", "Problem Solving", "Debugging"},
			PreferredSkills:      []string{"Cloud Computing", "Mobile Development", "AI/ML"},
			EntrySalaryRange:     &marketModel.SalaryBand{Min: 300000, Max: 500000},
			MidSalaryRange:       &marketModel.SalaryBand{Min: 600000, Max: 1000000},
			SeniorSalaryRange:    &marketModel.SalaryBand{Min: 1200000, Max: 2000000},
			JobAvailability:      marketModel.DemandHigh,
			WorkLifeBalance:      70,
			StressLevel:          60,
			CreativityRequired:   80,
			IsActive:             true,
			CreatedAt:            now,
		},
		{
			ID:                   id.CareerPathID(uuid.New()),
			Name:                 "Medical Doctor",
			NameFr:               "Médecin",
			Description:          "Diagnose and treat patients, provide medical care",
			SectorID:             healthcare.ID,
			EntryLevelPositions:  []string{"Intern Doctor", "Resident"},
			MidLevelPositions:    []string{"General Practitioner", "Specialist"},
			SeniorLevelPositions: []string{"Consultant", "Department Head", "Medical Director"},
			RequiredEducation:    []string{"Doctor of Medicine"},
			RequiredSkills:       []string{"Medical Knowledge", "Patient Care", "Diagnostics"},
			PreferredSkills:      []string{"Surgical Skills", "Research", "Leadership"},
			EntrySalaryRange:     &marketModel.SalaryBand{Min: 500000, Max: 800000},
			MidSalaryRange:       &marketModel.SalaryBand{Min: 1000000, Max: 1800000},
			SeniorSalaryRange:    &marketModel.SalaryBand{Min: 2000000, Max: 3500000},
			JobAvailability:      marketModel.DemandVeryHigh,
			WorkLifeBalance:      40,
			StressLevel:          90,
			CreativityRequired:   60,
			IsActive:             true,
			CreatedAt:            now,
		},
	}
	for _, p := range careerPaths {
		if err := s.PutCareerPath(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
