package report

import (
	"fmt"
	"strconv"

	"github.com/csc-gandhinagar/stipend-flow/internal/model"
	"github.com/csc-gandhinagar/stipend-flow/internal/stipend"
)

// The fixed noting paragraphs, carried over from the office template.
// The numbered paragraphs interleave with the generated tables in the
// order the study branch files them.
const (
	notingSalutation = "સાદર રજૂ,"

	notingPara1 = "\tસ્વર્ણિમ, ગાંધીનગર ખાતે ચાલતા યુપીએસસી સિવિલ સર્વિસીસ પરીક્ષા સ્ટડી સેન્ટરના ઉમેદવારોને " +
		"સામાન્ય વહીવટ વિભાગના મૂળ ઠરાવ તા.૨૯/૦૭/૨૦૧૧ મુજબ, ઉમેદવારોને સ્ટડી ગ્રાન્ટ તેઓની પર્યાપ્ત હાજરીના " +
		"પ્રમાણની ચકાસણી બાદ આપવામાં આવશે તેમ દર્શાવેલ છે. સા.વ.વિ.ના તા.૨૧/૦૫/૨૦૧૫ના ઠરાવ મુજબ પ્રત્યેક " +
		"તાલીમાર્થીને માસિક રૂ.૨૦૦૦/- સ્ટાઈપેન્ડ તરીકે આપવામાં આવશે."

	notingPara2 = "૨.\tસંસ્થાના તા.૧૭/૦૫/૨૦૧૭ ના પરિપત્ર અનુસંધાને, તાલીમવર્ગમાં જે ઉમેદવારોની હાજરી નિયત " +
		"પ્રમાણ કરતાં વધુ હોય તેવા ઉમેદવારોને પ્રતિ માસ રૂ.૨,૦૦૦/- પ્રોત્સાહન આપવામાં આવશે તે પ્રમાણે નિર્ણય " +
		"લેવામાં આવેલ છે."
)

// buildDocument assembles the structured noting report: intro
// paragraphs, the review-cases table, the per-category annexures, the
// grand summary, and the closing payment paragraphs.
func buildDocument(ws model.WorkingSet, m *Monthly, keys resolvedKeys) model.ReportDocument {
	doc := model.ReportDocument{Title: fmt.Sprintf("NOTING %s Report", m.Month)}

	doc.Sections = append(doc.Sections,
		model.Section{Text: notingSalutation, Bold: true},
		model.Section{Text: notingPara1},
		model.Section{Text: notingPara2, Bold: true},
	)

	if review := reviewTable(ws, keys); review != nil {
		doc.Sections = append(doc.Sections,
			model.Section{Text: fmt.Sprintf(
				"નીચે કોષ્ટકમાં દર્શાવ્યા મુજબના કુલ %d ઉમેદવારની અરજીઓ ચકાસણી હેઠળ છે; ડોમિસાઈલ અથવા "+
					"અધૂરી વિગતોના કારણે તેઓની અરજી પર નિર્ણય બાકી છે.", len(review.Rows))},
			model.Section{Table: review},
		)
	}

	doc.Sections = append(doc.Sections, model.Section{Text: fmt.Sprintf(
		"૪.\tહાજરીની ચકાસણી કરતા %s માસનું માસિક પ્રોત્સાહન સહાય નીચે મુજબના ઉમેદવારોને "+
			"Annexure-A, B, C, D ની વિગતે મળવાપાત્ર થાય છે.", m.Month)})

	for _, c := range m.Categories {
		if c.Count == 0 {
			continue
		}
		doc.Sections = append(doc.Sections,
			model.Section{Text: fmt.Sprintf("ANNEXURE – %s", Annexures[c.Category]), Bold: true},
			model.Section{Text: c.Full.Title, Bold: true},
			model.Section{Table: tableCopy(c.Full)},
		)
	}

	grandFormatted := stipend.FormatAmount(m.GrandTotal.IntPart())
	doc.Sections = append(doc.Sections,
		model.Section{Text: m.Summary.Title, Bold: true},
		model.Section{Table: tableCopy(m.Summary)},
		model.Section{Text: fmt.Sprintf(
			"૫.\tઉપર કોષ્ટકમાં દર્શાવેલ કેટેગરી વાઈઝ પત્રકના કુલ %d તાલીમાર્થીઓને કુલ રૂ. %s/- ની ચુકવણી "+
				"કરવાની થાય છે. ઉક્ત ઉમેદવારોને ચુકવવા પાત્ર કુલ રકમ RTGS/NEFT દ્વારા તેઓના બેન્ક ખાતામાં "+
				"જમા કરાવવા સારું હિસાબી શાખાને હુકમ કરીએ.", m.TotalCount, grandFormatted)},
		model.Section{Text: fmt.Sprintf(
			"૬.\tસા.વ.વિ.ના તા.૨૧-૦૫-૨૦૧૫ના ઠરાવ મુજબ, કુલ રૂ. %s/- ની ચુકવણી ચાલુ નાણાકીય વર્ષની "+
				"ગ્રાન્ટમાંથી કરવાનું રહે છે.", grandFormatted)},
	)

	return doc
}

// reviewTable lists applicants still awaiting a reviewer decision.
// Nil when the queue is empty.
func reviewTable(ws model.WorkingSet, keys resolvedKeys) *model.Table {
	review := ws.WithStatus(model.StatusReview)
	if len(review) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(review))
	for i := range review {
		a := &review[i]
		remark := a.Get("ReviewReason")
		if remark == "" {
			remark = "Incomplete application"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.Get(keys.name),
			a.Get(keys.roll),
			remark,
		})
	}

	return &model.Table{
		Title:   "Applications pending review",
		Headers: []string{"Sr No", "Full Name", "Application No", "Remarks"},
		Rows:    rows,
	}
}

func tableCopy(t model.Table) *model.Table {
	c := t
	return &c
}
