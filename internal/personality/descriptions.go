package personality

import "persona-match/internal/domain"

// Describe devuelve la ficha del tipo, o false si no está en el catálogo.
func Describe(t domain.PersonalityType) (domain.TypeDescription, bool) {
	d, ok := descriptions[t]
	return d, ok
}

var descriptions = map[domain.PersonalityType]domain.TypeDescription{
	"ISTJ": {Type: "ISTJ", Traits: "Responsible, detail-oriented, practical", Strengths: "Reliable, organized, hardworking, honest", Weaknesses: "Stubborn, insensitive, judgmental, overly serious"},
	"ISFJ": {Type: "ISFJ", Traits: "Loyal, considerate, traditional", Strengths: "Supportive, meticulous, patient, observant", Weaknesses: "Overly humble, avoids confrontation, takes things personally"},
	"INFJ": {Type: "INFJ", Traits: "Insightful, idealistic, private", Strengths: "Empathetic, creative, principled, visionary", Weaknesses: "Perfectionist, prone to burnout, overly sensitive"},
	"INTJ": {Type: "INTJ", Traits: "Strategic, independent, reserved", Strengths: "High-achieving, logical, long-term planner", Weaknesses: "Arrogant, dismissive of emotions, socially aloof"},
	"ISTP": {Type: "ISTP", Traits: "Curious, practical, action-oriented", Strengths: "Adaptable, problem-solver, hands-on, independent", Weaknesses: "Impulsive, risk-prone, emotionally detached"},
	"ISFP": {Type: "ISFP", Traits: "Gentle, artistic, spontaneous", Strengths: "Charming, flexible, sensitive, open-minded", Weaknesses: "Unpredictable, avoids conflict, dislikes routine"},
	"INFP": {Type: "INFP", Traits: "Idealistic, introspective, empathetic", Strengths: "Loyal, creative, compassionate, deeply caring", Weaknesses: "Overly idealistic, impractical, emotionally vulnerable"},
	"INTP": {Type: "INTP", Traits: "Analytical, abstract thinker, quiet", Strengths: "Innovative, objective, independent thinker", Weaknesses: "Absent-minded, socially withdrawn, insensitive"},
	"ESTP": {Type: "ESTP", Traits: "Energetic, bold, perceptive", Strengths: "Charismatic, practical, quick thinker, risk-taker", Weaknesses: "Impatient, insensitive, impulsive, easily bored"},
	"ESFP": {Type: "ESFP", Traits: "Sociable, fun-loving, spontaneous", Strengths: "Optimistic, adaptable, energetic, observant", Weaknesses: "Easily distracted, avoids conflict, struggles with planning"},
	"ENFP": {Type: "ENFP", Traits: "Enthusiastic, imaginative, people-centered", Strengths: "Inspiring, empathetic, open-minded, spontaneous", Weaknesses: "Disorganized, overcommitted, overly emotional"},
	"ENTP": {Type: "ENTP", Traits: "Witty, inventive, curious", Strengths: "Strategic, charismatic, quick learner, innovative", Weaknesses: "Argumentative, insensitive, easily bored"},
	"ESTJ": {Type: "ESTJ", Traits: "Decisive, organized, leadership-driven", Strengths: "Responsible, loyal, efficient, practical", Weaknesses: "Rigid, bossy, judgmental, inflexible"},
	"ESFJ": {Type: "ESFJ", Traits: "Warm, cooperative, sociable", Strengths: "Loyal, organized, helpful, people-focused", Weaknesses: "Overly needy, avoids conflict, status-conscious"},
	"ENFJ": {Type: "ENFJ", Traits: "Charismatic, altruistic, empathetic", Strengths: "Inspirational, natural leader, idealistic, supportive", Weaknesses: "Overbearing, overly sensitive, approval-seeking"},
	"ENTJ": {Type: "ENTJ", Traits: "Assertive, efficient, goal-oriented", Strengths: "Strategic, confident, strong-willed, organized", Weaknesses: "Domineering, impatient, blunt, intolerant"},
}
