package enrichment

import (
	"errors"
	"fmt"
	"strings"

	recModel "edupath/internal/recommendation/models"
	studentModel "edupath/internal/student/models"
)

var errGeneratorUnavailable = errors.New("content generator not configured")

// Fallback content shipped with the binary, used whenever generation is
// unavailable or fails.
var (
	fallbackGeneralAdvice = map[string]string{
		"en": "Your educational journey is unique. Focus on your strengths and explore opportunities that align with your interests. Cameroon offers many possibilities for motivated students.",
		"fr": "Votre parcours éducatif est unique. Concentrez-vous sur vos forces et explorez les opportunités qui correspondent à vos intérêts. Le Cameroun offre de nombreuses possibilités pour les étudiants motivés.",
	}
	fallbackCareerPlanning = map[string]string{
		"en": "Actively explore different careers through internships, volunteering, and conversations with professionals. Build your network and gain practical experience early.",
		"fr": "Explorez activement différentes carrières à travers des stages, du bénévolat et des conversations avec des professionnels. Construisez votre réseau et acquérez une expérience pratique dès maintenant.",
	}
	fallbackStudyTips = map[string][]string{
		"en": {
			"Create a regular study schedule",
			"Form study groups with classmates",
			"Practice with past exam papers",
			"Seek help from your teachers",
			"Take regular breaks while studying",
		},
		"fr": {
			"Créez un calendrier d'étude régulier",
			"Formez des groupes d'étude avec vos camarades",
			"Pratiquez avec des examens passés",
			"Demandez de l'aide à vos professeurs",
			"Prenez des pauses régulières pendant l'étude",
		},
	}
	fallbackStudyGuide = map[string]string{
		"en": "Review core subjects, practice past exams, and develop relevant skills for this field.",
		"fr": "Révisez les matières principales, pratiquez les examens passés, et développez les compétences pertinentes pour ce domaine.",
	}
)

func fallbackProgramAdvice(institution, language string) string {
	if language == "fr" {
		return fmt.Sprintf("Ce programme à %s offre d'excellentes opportunités. Concentrez-vous sur vos points forts académiques et préparez-vous soigneusement.", institution)
	}
	return fmt.Sprintf("This program at %s offers excellent opportunities. Focus on your academic strengths and prepare thoroughly.", institution)
}

func joinOr(values []string, empty string) string {
	if len(values) == 0 {
		return empty
	}
	return strings.Join(values, ", ")
}

func generalAdvicePrompt(profile *studentModel.Profile, language string) string {
	if language == "fr" {
		return fmt.Sprintf(`En tant que conseiller éducatif expert au Cameroun, donnez des conseils personnalisés à un étudiant avec le profil suivant:

Système d'examen: %s
Intérêts: %s
Préférences de carrière: %s

Donnez des conseils encourageants et pratiques en 2-3 paragraphes sur:
1. Comment tirer parti de leurs forces académiques
2. L'importance de l'exploration de carrière
3. Des conseils spécifiques au contexte camerounais

Répondez en français, soyez positif et motivant.`,
			profile.ExamSystem,
			joinOr(profile.Interests, "Non spécifiés"),
			joinOr(profile.CareerPreferences, "Non spécifiées"))
	}
	return fmt.Sprintf(`As an expert educational counselor in Cameroon, provide personalized advice for a student with this profile:

Exam system: %s
Interests: %s
Career preferences: %s

Provide encouraging and practical advice in 2-3 paragraphs covering:
1. How to leverage their academic strengths
2. The importance of career exploration
3. Specific advice for the Cameroonian context

Be positive and motivating in your response.`,
		profile.ExamSystem,
		joinOr(profile.Interests, "Not specified"),
		joinOr(profile.CareerPreferences, "Not specified"))
}

func studyTipsPrompt(profile *studentModel.Profile, language string) string {
	if language == "fr" {
		return fmt.Sprintf(`Donnez 5 conseils d'étude spécifiques pour un étudiant camerounais utilisant le système %s.

Formatez votre réponse comme une liste JSON de 5 conseils pratiques et actionables.
Exemple: ["Conseil 1", "Conseil 2", "Conseil 3", "Conseil 4", "Conseil 5"]

Concentrez-vous sur des stratégies d'étude efficaces, la gestion du temps, et la préparation aux examens.`, profile.ExamSystem)
	}
	return fmt.Sprintf(`Provide 5 specific study tips for a Cameroonian student using the %s system.

Format your response as a JSON list of 5 practical and actionable tips.
Example: ["Tip 1", "Tip 2", "Tip 3", "Tip 4", "Tip 5"]

Focus on effective study strategies, time management, and exam preparation.`, profile.ExamSystem)
}

func careerPlanningPrompt(profile *studentModel.Profile, language string) string {
	if language == "fr" {
		return fmt.Sprintf(`En tant que conseiller en carrière au Cameroun, donnez des conseils de planification de carrière pour un étudiant avec:

Intérêts: %s
Préférences de carrière: %s

Donnez des conseils pratiques en 2-3 paragraphes sur:
1. Comment explorer les options de carrière
2. L'importance du réseautage et de l'expérience pratique
3. Les opportunités spécifiques au marché du travail camerounais

Soyez pratique et orienté vers l'action.`,
			joinOr(profile.Interests, "Non spécifiés"),
			joinOr(profile.CareerPreferences, "Non spécifiées"))
	}
	return fmt.Sprintf(`As a career counselor in Cameroon, provide career planning advice for a student with:

Interests: %s
Career preferences: %s

Provide practical advice in 2-3 paragraphs covering:
1. How to explore career options
2. The importance of networking and practical experience
3. Specific opportunities in the Cameroonian job market

Be practical and action-oriented.`,
		joinOr(profile.Interests, "Not specified"),
		joinOr(profile.CareerPreferences, "Not specified"))
}

func programAdvicePrompt(rec recModel.ScoredRecommendation, language string) string {
	if language == "fr" {
		return fmt.Sprintf(`Donnez des conseils personnalisés pour un étudiant camerounais considérant %s à %s.

Rédigez un paragraphe motivant et informatif expliquant pourquoi ce programme pourrait être un bon choix et comment réussir.
Soyez spécifique au contexte camerounais et encourageant.`, rec.ProgramName, rec.InstitutionName)
	}
	return fmt.Sprintf(`Provide personalized advice for a Cameroonian student considering %s at %s.

Write a motivating and informative paragraph explaining why this program might be a good choice and how to succeed.
Be specific to the Cameroonian context and encouraging.`, rec.ProgramName, rec.InstitutionName)
}

func studyGuidePrompt(rec recModel.ScoredRecommendation, language string) string {
	if language == "fr" {
		return fmt.Sprintf(`Créez un résumé de guide d'étude pour préparer %s.

Donnez 3-4 points clés sur ce qu'il faut étudier et comment se préparer efficacement.
Soyez concis et pratique.`, rec.ProgramName)
	}
	return fmt.Sprintf(`Create a study guide summary for preparing for %s.

Provide 3-4 key points on what to study and how to prepare effectively.
Be concise and practical.`, rec.ProgramName)
}
