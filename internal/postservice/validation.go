package postservice

import (
	"strings"

	"github.com/sayurimoto/inkwell/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 250), "title", "must not be more than 250 characters long")
}

func validateSubtitle(v *common.Validator, subtitle string) {
	v.Check(subtitle != "", "subtitle", "must be provided")
	v.Check(v.CheckStringLength(subtitle, 1, 250), "subtitle", "must not be more than 250 characters long")
}

func validateBody(v *common.Validator, body string) {
	v.Check(strings.TrimSpace(body) != "", "body", "must be provided")
}

func validateImgURL(v *common.Validator, imgURL string) {
	v.Check(imgURL != "", "img_url", "must be provided")
	v.Check(strings.HasPrefix(imgURL, "http://") || strings.HasPrefix(imgURL, "https://"), "img_url", "must be an http or https URL")
}

func validateCommentText(v *common.Validator, text string) {
	v.Check(strings.TrimSpace(text) != "", "text", "must be provided")
	v.Check(v.CheckStringLength(text, 1, 250), "text", "must not be more than 250 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
