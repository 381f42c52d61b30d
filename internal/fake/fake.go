// Package fake generates Polish personal, company and address data.
package fake

import (
	"fmt"
	"strings"
	"time"

	"github.com/helixml/brokerseed/domain/sampling"
)

// Country is the country written on every generated address.
const Country = "Poland"

var cities = []string{
	"Warszawa", "Kraków", "Wrocław", "Poznań", "Gdańsk",
	"Szczecin", "Bydgoszcz", "Lublin", "Katowice", "Białystok",
}

var streets = []string{
	"Marszałkowska", "Długa", "Krótka", "Słoneczna", "Kwiatowa",
	"Ogrodowa", "Polna", "Leśna", "Spacerowa", "Parkowa",
}

var maleFirst = []string{
	"Jan", "Piotr", "Krzysztof", "Andrzej", "Tomasz", "Paweł", "Marcin",
	"Michał", "Marek", "Grzegorz", "Łukasz", "Adam", "Zbigniew", "Jerzy",
	"Tadeusz", "Mateusz", "Dariusz", "Mariusz", "Wojciech", "Rafał",
}

var femaleFirst = []string{
	"Anna", "Maria", "Katarzyna", "Małgorzata", "Agnieszka", "Barbara",
	"Ewa", "Krystyna", "Elżbieta", "Magdalena", "Joanna", "Zofia",
	"Aleksandra", "Monika", "Teresa", "Danuta", "Natalia", "Karolina",
	"Marta", "Beata",
}

// surnames holds masculine and feminine forms.
var surnames = [][2]string{
	{"Nowak", "Nowak"}, {"Kowalski", "Kowalska"}, {"Wiśniewski", "Wiśniewska"},
	{"Wójcik", "Wójcik"}, {"Kowalczyk", "Kowalczyk"}, {"Kamiński", "Kamińska"},
	{"Lewandowski", "Lewandowska"}, {"Zieliński", "Zielińska"},
	{"Szymański", "Szymańska"}, {"Woźniak", "Woźniak"}, {"Dąbrowski", "Dąbrowska"},
	{"Kozłowski", "Kozłowska"}, {"Jankowski", "Jankowska"}, {"Mazur", "Mazur"},
	{"Kwiatkowski", "Kwiatkowska"}, {"Krawczyk", "Krawczyk"},
	{"Piotrowski", "Piotrowska"}, {"Grabowski", "Grabowska"},
	{"Nowakowski", "Nowakowska"}, {"Pawłowski", "Pawłowska"},
	{"Michalski", "Michalska"}, {"Król", "Król"}, {"Wieczorek", "Wieczorek"},
	{"Jabłoński", "Jabłońska"}, {"Wróbel", "Wróbel"},
}

var companyCores = []string{
	"Polmex", "Budimex", "Transbud", "Agromet", "Elektrobud", "Inter-Trans",
	"Mebel-Pol", "Stal-Hurt", "Ekoplast", "Drewpol", "Medicus", "Infosoft",
	"Logistyka Plus", "Art-Dom", "Auto-Serwis", "Farmapol",
}

var companyPrefixes = []string{"", "", "Grupa ", "Zakłady ", "Przedsiębiorstwo "}

var legalForms = []string{"Sp. z o.o.", "S.A.", "Sp. j.", "Sp. k.", "Sp. z o.o. Sp. k."}

var mailDomains = []string{"gmail.com", "wp.pl", "onet.pl", "interia.pl", "o2.pl", "poczta.fm"}

// Person is a generated natural person.
type Person struct {
	FirstName string
	LastName  string
	Female    bool
}

// Faker draws generated values from a sampling source.
type Faker struct {
	src sampling.Source
}

// New creates a Faker over src.
func New(src sampling.Source) *Faker {
	return &Faker{src: src}
}

func (f *Faker) pick(items []string) string {
	return items[f.src.IntN(len(items))]
}

// Person returns a person whose surname agrees with their sex.
func (f *Faker) Person() Person {
	female := sampling.Chance(f.src, 0.5)
	pair := surnames[f.src.IntN(len(surnames))]
	if female {
		return Person{FirstName: f.pick(femaleFirst), LastName: pair[1], Female: true}
	}
	return Person{FirstName: f.pick(maleFirst), LastName: pair[0]}
}

// CompanyName returns a company name with a Polish legal form.
func (f *Faker) CompanyName() string {
	core := f.pick(companyCores)
	if sampling.Chance(f.src, 0.3) {
		core = surnames[f.src.IntN(len(surnames))][0] + " i Wspólnicy"
	}
	return f.pick(companyPrefixes) + core + " " + f.pick(legalForms)
}

// City returns a Polish city.
func (f *Faker) City() string {
	return f.pick(cities)
}

// Street returns a street with a house number.
func (f *Faker) Street() string {
	return fmt.Sprintf("%s %d", f.pick(streets), sampling.IntBetween(f.src, 1, 200))
}

// PostalCode returns a code in NN-NNN form.
func (f *Faker) PostalCode() string {
	return fmt.Sprintf("%02d-%03d", sampling.IntBetween(f.src, 10, 99), sampling.IntBetween(f.src, 100, 999))
}

// Phone returns a +48 number whose first group lies in [lo, hi].
func (f *Faker) Phone(lo, hi int) string {
	return fmt.Sprintf("+48 %d %d %d",
		sampling.IntBetween(f.src, lo, hi),
		sampling.IntBetween(f.src, 100, 999),
		sampling.IntBetween(f.src, 100, 999),
	)
}

// Mobile returns a mobile phone number.
func (f *Faker) Mobile() string {
	return f.Phone(500, 799)
}

// Email returns a personal mailbox address built from the given name parts.
func (f *Faker) Email(parts ...string) string {
	local := Slug(parts...)
	if local == "" {
		local = "kontakt"
	}
	if sampling.Chance(f.src, 0.5) {
		local = fmt.Sprintf("%s%d", local, sampling.IntBetween(f.src, 1, 99))
	}
	return local + "@" + f.pick(mailDomains)
}

// PESEL returns a national id encoding birth and sex with a valid check digit.
func (f *Faker) PESEL(birth time.Time, female bool) string {
	sex := f.src.IntN(5) * 2
	if !female {
		sex++
	}
	serial := f.src.IntN(1000)
	return PESEL(birth, serial, sex)
}

// NIP returns a tax id with a valid check digit, formatted NNN-NNN-NN-NN.
func (f *Faker) NIP() string {
	for {
		var d [9]int
		d[0] = 1 + f.src.IntN(9)
		for i := 1; i < 9; i++ {
			d[i] = f.src.IntN(10)
		}
		if nip, ok := NIP(d); ok {
			return nip
		}
	}
}

// Sentence picks one of the given templates.
func (f *Faker) Sentence(templates []string) string {
	return f.pick(templates)
}

var folding = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n",
	"ó", "o", "ś", "s", "ź", "z", "ż", "z",
)

// Fold lowercases s and replaces Polish diacritics with ASCII letters.
func Fold(s string) string {
	return folding.Replace(strings.ToLower(s))
}

// Slug folds each part, keeps only [a-z0-9-] and joins the parts with dots.
func Slug(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		var b strings.Builder
		for _, r := range Fold(p) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return strings.Join(out, ".")
}
