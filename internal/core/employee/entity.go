package employee

// Employee は取引の所有者となる社員です。取得後は変更されません。
type Employee struct {
	ID        string
	FirstName string
	LastName  string
}

// FullName は表示用の氏名を返します。
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}
