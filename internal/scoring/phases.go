package scoring

import (
	"strings"

	"github.com/watchlist/screening-engine/internal/sanctionsdata"
	"github.com/watchlist/screening-engine/internal/similarity"
	"github.com/watchlist/screening-engine/internal/textnorm"
)

// nameScore compares the query's normalized primary name against the
// candidate's normalized primary name. Unless KeepStopwords is set, it
// also tries both sides' stopword-stripped form and keeps the max, since
// the stopword helper's only purpose is to stop a shared stopword from
// inflating or deflating a name comparison.
func nameScore(query, candidate *sanctionsdata.Entity, simCfg similarity.Config) float64 {
	qpf, cpf := query.Prepared(), candidate.Prepared()
	if qpf == nil || cpf == nil {
		return 0
	}
	best := similarity.Score(qpf.NormalizedPrimaryName, cpf.NormalizedPrimaryName, simCfg)
	if !simCfg.KeepStopwords {
		qStripped := firstOr(qpf.NormalizedNamesWithoutStopwords, qpf.NormalizedPrimaryName)
		cStripped := firstOr(cpf.NormalizedNamesWithoutStopwords, cpf.NormalizedPrimaryName)
		if s := similarity.Score(qStripped, cStripped, simCfg); s > best {
			best = s
		}
	}
	return best
}

// altNameScore takes the max over the candidate's alt names of the same
// computation as nameScore.
func altNameScore(query, candidate *sanctionsdata.Entity, simCfg similarity.Config) float64 {
	qpf, cpf := query.Prepared(), candidate.Prepared()
	if qpf == nil || cpf == nil {
		return 0
	}
	best := 0.0
	for i, alt := range cpf.NormalizedAltNames {
		if s := similarity.Score(qpf.NormalizedPrimaryName, alt, simCfg); s > best {
			best = s
		}
		if !simCfg.KeepStopwords {
			qStripped := firstOr(qpf.NormalizedNamesWithoutStopwords, qpf.NormalizedPrimaryName)
			// NormalizedNamesWithoutStopwords is [primary, alt0, alt1, ...];
			// the alt name at index i lives at i+1.
			altStripped := alt
			if i+1 < len(cpf.NormalizedNamesWithoutStopwords) {
				altStripped = cpf.NormalizedNamesWithoutStopwords[i+1]
			}
			if s := similarity.Score(qStripped, altStripped, simCfg); s > best {
				best = s
			}
		}
	}
	return best
}

func firstOr(strs []string, fallback string) string {
	if len(strs) == 0 {
		return fallback
	}
	return strs[0]
}

// govIDScore returns 1 on the first (query ID, index ID) pair whose
// normalized identifier, type, and (when both supplied) country all match,
// else 0.
func govIDScore(query, candidate *sanctionsdata.Entity) float64 {
	for _, q := range query.GovernmentIDs {
		qID := textnorm.NormalizeID(q.Identifier)
		if qID == "" {
			continue
		}
		for _, c := range candidate.GovernmentIDs {
			if qID != textnorm.NormalizeID(c.Identifier) {
				continue
			}
			if !strings.EqualFold(q.Type, c.Type) {
				continue
			}
			if q.Country != "" && c.Country != "" && !strings.EqualFold(q.Country, c.Country) {
				continue
			}
			return 1
		}
	}
	return 0
}

// cryptoScore returns 1 on the first (currency, address) pair that matches;
// currency compares case-insensitively (after textnorm.NormalizeID, which
// also drops spaces and punctuation), address case-sensitively.
func cryptoScore(query, candidate *sanctionsdata.Entity) float64 {
	for _, q := range query.CryptoAddresses {
		if q.Address == "" {
			continue
		}
		for _, c := range candidate.CryptoAddresses {
			if textnorm.NormalizeID(q.Currency) == textnorm.NormalizeID(c.Currency) && q.Address == c.Address {
				return 1
			}
		}
	}
	return 0
}

// contactScore returns 1 on case-insensitive email equality or digit-only
// phone equality, else 0.
func contactScore(query, candidate *sanctionsdata.Entity) float64 {
	if query.Contact.Email != "" && candidate.Contact.Email != "" &&
		strings.EqualFold(query.Contact.Email, candidate.Contact.Email) {
		return 1
	}
	if query.Contact.Phone != "" && candidate.Contact.Phone != "" &&
		textnorm.NormalizePhone(query.Contact.Phone) == textnorm.NormalizePhone(candidate.Contact.Phone) {
		return 1
	}
	return 0
}

// addressScore takes the max over (query address, index address) pairs of
// the weighted country/city/street blend: 0.3*country_eq + 0.3*city_jw +
// 0.4*street_sim, unnormalized. A field absent on either side contributes
// 0 to the sum rather than being dropped from a renormalized denominator,
// so a pair that only supplies city data caps at 0.3, not 1.0.
func addressScore(query, candidate *sanctionsdata.Entity, simCfg similarity.Config) float64 {
	best := 0.0
	for _, q := range query.Addresses {
		for _, c := range candidate.Addresses {
			if s := addressPairScore(q, c, simCfg); s > best {
				best = s
			}
		}
	}
	return best
}

func addressPairScore(q, c sanctionsdata.Address, simCfg similarity.Config) float64 {
	sum := 0.0

	if q.Country != "" && c.Country != "" && strings.EqualFold(q.Country, c.Country) {
		sum += 0.3
	}
	if q.City != "" && c.City != "" {
		sum += 0.3 * similarity.JaroWinkler(textnorm.Normalize(q.City), textnorm.Normalize(c.City), simCfg)
	}

	qStreet := strings.TrimSpace(q.Line1 + " " + q.Line2)
	cStreet := strings.TrimSpace(c.Line1 + " " + c.Line2)
	if qStreet != "" && cStreet != "" {
		sum += 0.4 * similarity.Score(textnorm.Normalize(qStreet), textnorm.Normalize(cStreet), simCfg)
	}

	return sum
}

// dateScore compares the type-specific date field:
// birth date for persons, creation date for business/organization, built
// date for vessel/aircraft. Returns 0 when types disagree or either side
// lacks the field.
func dateScore(query, candidate *sanctionsdata.Entity) float64 {
	if query.Type != candidate.Type {
		return 0
	}

	var q, c string
	switch query.Type {
	case sanctionsdata.EntityTypePerson:
		if query.Person == nil || candidate.Person == nil {
			return 0
		}
		q, c = query.Person.BirthDate, candidate.Person.BirthDate
	case sanctionsdata.EntityTypeBusiness:
		if query.Business == nil || candidate.Business == nil {
			return 0
		}
		q, c = query.Business.CreationDate, candidate.Business.CreationDate
	case sanctionsdata.EntityTypeOrganization:
		if query.Organization == nil || candidate.Organization == nil {
			return 0
		}
		q, c = query.Organization.CreationDate, candidate.Organization.CreationDate
	case sanctionsdata.EntityTypeVessel:
		if query.Vessel == nil || candidate.Vessel == nil {
			return 0
		}
		q, c = query.Vessel.BuiltDate, candidate.Vessel.BuiltDate
	case sanctionsdata.EntityTypeAircraft:
		if query.Aircraft == nil || candidate.Aircraft == nil {
			return 0
		}
		q, c = query.Aircraft.BuiltDate, candidate.Aircraft.BuiltDate
	default:
		return 0
	}

	if q == "" || c == "" {
		return 0
	}
	if strings.TrimSpace(q) == strings.TrimSpace(c) {
		return 1
	}
	return 0
}
